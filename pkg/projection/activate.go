package projection

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
)

// ActionKind is what activating an item does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpenURL
	ActionShowDetail
	ActionSubmit
)

// Action is the outcome of activating an item.
type Action struct {
	Kind ActionKind
	URL  string
	Item models.ResolvedItem
}

// Activate decides what a click on item does for role. Linked items open
// externally, books show inline, assignments open the submission form for
// roles that can submit.
func Activate(item models.ResolvedItem, role session.Role) Action {
	a := Action{Kind: ActionShowDetail, Item: item}
	switch item.Type {
	case models.ItemVideo, models.ItemNotes:
		if u := item.URL(); u != "" {
			a.Kind = ActionOpenURL
			a.URL = u
		}
	case models.ItemAssignment:
		if CanSubmit(role) {
			a.Kind = ActionSubmit
		}
	}
	return a
}

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a func to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// SystemOpener hands URLs to the desktop's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
