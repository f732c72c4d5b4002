package browser

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

type treeLoadedMsg struct {
	snap *tree.Snapshot
	err  error
}

type contentsLoadedMsg struct {
	token uint64
	items []models.ResolvedItem
	err   error
}

type evaluationLoadedMsg struct {
	eval *models.Evaluation
	err  error
}

// mutationDoneMsg is sent when a create finishes. On success the service
// has already re-fetched the tree.
type mutationDoneMsg struct {
	what string
	err  error
}

type submittedMsg struct {
	assignment string
	err        error
}

type urlOpenedMsg struct {
	url string
	err error
}

func loadTreeCmd(svc *service.Service, course models.ID) tea.Cmd {
	return func() tea.Msg {
		snap, err := svc.LoadTree(context.Background(), course)
		return treeLoadedMsg{snap: snap, err: err}
	}
}

func evaluationCmd(svc *service.Service, course models.ID) tea.Cmd {
	return func() tea.Msg {
		eval, err := svc.Evaluation(context.Background(), course)
		return evaluationLoadedMsg{eval: eval, err: err}
	}
}

func openSubfolderCmd(svc *service.Service, course models.ID, row projection.Row, token uint64) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.SubfolderContents(context.Background(), course, row.FolderID, row.ID)
		return contentsLoadedMsg{token: token, items: items, err: err}
	}
}

func createFolderCmd(svc *service.Service, course models.ID, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.CreateFolder(context.Background(), course, title)
		return mutationDoneMsg{what: "folder " + strconv.Quote(title), err: err}
	}
}

func createSubfolderCmd(svc *service.Service, course, folder models.ID, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.CreateSubfolder(context.Background(), course, folder, title)
		return mutationDoneMsg{what: "subfolder " + strconv.Quote(title), err: err}
	}
}

func createItemCmd(svc *service.Service, target service.ItemTarget, in service.ItemInput) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.CreateItem(context.Background(), target, in)
		return mutationDoneMsg{what: string(in.ItemType()) + " item", err: err}
	}
}

func submitCmd(svc *service.Service, course models.ID, assignment, url string) tea.Cmd {
	return func() tea.Msg {
		err := svc.SubmitAssignment(context.Background(), course, assignment, url)
		return submittedMsg{assignment: assignment, err: err}
	}
}

func openURLCmd(opener projection.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		return urlOpenedMsg{url: url, err: opener.Open(url)}
	}
}

// itemInput builds the create payload from the form fields.
func (f *form) itemInput() (service.ItemInput, error) {
	switch f.variant {
	case models.ItemVideo:
		in := service.VideoInput{Title: f.value(0), URLLink: strings.TrimSpace(f.value(1))}
		if d := strings.TrimSpace(f.value(2)); d != "" {
			n, err := strconv.Atoi(d)
			if err != nil {
				return nil, &service.ValidationError{Fields: []service.FieldError{{Field: "duration", Message: "duration must be a whole number of seconds"}}}
			}
			in.Duration = n
		}
		return in, nil
	case models.ItemNotes:
		return service.NotesInput{Title: f.value(0), URLLink: strings.TrimSpace(f.value(1)), DocumentType: f.value(2)}, nil
	default:
		return service.BookInput{Title: f.value(0), Author: f.value(1), Publisher: f.value(2), Edition: f.value(3)}, nil
	}
}
