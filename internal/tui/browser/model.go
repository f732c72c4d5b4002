// Package browser is the interactive course browser. It renders the role
// projection of a course tree and drives the instructor forms and the
// student content modal.
package browser

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Siddaarth-Babu/mooc/internal/tui/browser/components/confirm"
	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

type formKind int

const (
	formFolder formKind = iota
	formSubfolder
	formItem
)

// form is an open instructor creation dialog.
type form struct {
	kind        formKind
	step        int // formItem: 0 variant picker, 1 fields
	folderID    models.ID
	subfolderID models.ID
	variant     models.ItemType
	labels      []string
	inputs      []textinput.Model
	focus       int
	err         string
}

// Model is the main model for the course browser TUI
type Model struct {
	svc    *service.Service
	course models.ID
	role   session.Role
	view   projection.View
	opener projection.Opener

	keys   KeyMap
	help   help.Model
	width  int
	height int

	loaded       bool
	loadErr      error
	snap         *tree.Snapshot
	exp          *tree.Expansion
	rows         []projection.Row
	cursor       int
	scrollOffset int
	lastKey      string // For detecting 'gg' and 'z' sequences

	statusMessage string
	pending       int // mutations in flight

	// Instructor creation state
	form          *form
	variantPicker list.Model

	// Student content state
	modal       projection.ContentModal
	modalCursor int
	detail      []string
	submitting  *models.ResolvedItem
	submitInput textinput.Model
	confirm     confirm.Model

	eval       *models.Evaluation
	evalErr    error
	evalLoaded bool
}

// New creates a new TUI model for course, projected for role.
func New(svc *service.Service, course models.ID, role session.Role, opener projection.Opener) Model {
	if opener == nil {
		opener = projection.SystemOpener{}
	}

	variants := []list.Item{
		variantItem(models.ItemVideo), variantItem(models.ItemNotes), variantItem(models.ItemBook),
	}
	picker := list.New(variants, variantDelegate{}, 30, 6)
	picker.Title = "Select Item Type"
	picker.SetShowHelp(false)
	picker.SetShowStatusBar(false)
	picker.SetShowPagination(false)
	picker.SetFilteringEnabled(false)
	picker.KeyMap.Quit.SetEnabled(false)

	submitInput := textinput.New()
	submitInput.Placeholder = "https://..."
	submitInput.CharLimit = 500
	submitInput.Width = 60

	return Model{
		svc:           svc,
		course:        course,
		role:          role,
		view:          projection.ForRole(role),
		opener:        opener,
		keys:          keys,
		help:          help.New(),
		snap:          svc.Cache(course).Snapshot(),
		exp:           tree.NewExpansion(),
		variantPicker: picker,
		submitInput:   submitInput,
		confirm:       confirm.New(colorOrange),
	}
}

// Init loads the tree, and the evaluation for the student view.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadTreeCmd(m.svc, m.course)}
	if m.view == projection.StudentView {
		cmds = append(cmds, evaluationCmd(m.svc, m.course))
	}
	return tea.Batch(cmds...)
}

// rebuildRows recomputes the display rows from the current snapshot.
func (m *Model) rebuildRows() {
	m.rows = projection.Rows(m.snap, m.exp, m.view)
	m.clampCursor()
	m.adjustScroll()
}

func (m *Model) currentRow() (projection.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return projection.Row{}, false
	}
	return m.rows[m.cursor], true
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = 60
	return ti
}

func newTitleForm(kind formKind, folderID models.ID) *form {
	f := &form{
		kind:     kind,
		folderID: folderID,
		labels:   []string{"Title"},
		inputs:   []textinput.Model{newInput("Enter title...")},
	}
	f.inputs[0].Focus()
	return f
}

// fieldLabels lists the inputs of each creatable variant, in payload order.
var fieldLabels = map[models.ItemType][]string{
	models.ItemVideo: {"Title", "URL", "Duration (seconds)"},
	models.ItemNotes: {"Title", "URL", "Document type"},
	models.ItemBook:  {"Title", "Author", "Publisher", "Edition"},
}

func (f *form) chooseVariant(t models.ItemType) {
	f.variant = t
	f.step = 1
	f.labels = fieldLabels[t]
	f.inputs = make([]textinput.Model, len(f.labels))
	for i, l := range f.labels {
		f.inputs[i] = newInput(l)
	}
	f.focus = 0
	f.inputs[0].Focus()
}

func (f *form) focusField(i int) {
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *form) value(i int) string {
	if i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

// variantItem implements the list.Item interface for the item type picker.
type variantItem models.ItemType

func (i variantItem) FilterValue() string { return string(i) }
func (i variantItem) Title() string       { return projection.TypeLabel(models.ItemType(i)) }
func (i variantItem) Description() string { return "" }

// variantDelegate is a custom delegate with minimal spacing for the item type picker
type variantDelegate struct{}

func (d variantDelegate) Height() int                             { return 1 }
func (d variantDelegate) Spacing() int                            { return 0 }
func (d variantDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d variantDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(variantItem)
	if !ok {
		return
	}

	str := i.Title()
	if index == m.Index() {
		str = lipgloss.NewStyle().Foreground(colorOrange).Render("│ " + str)
	} else {
		str = "  " + str
	}

	fmt.Fprint(w, str)
}
