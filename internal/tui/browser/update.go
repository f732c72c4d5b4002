package browser

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Siddaarth-Babu/mooc/internal/tui/browser/components/confirm"
	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.adjustScroll()
		return m, nil

	case treeLoadedMsg:
		m.loaded = true
		m.loadErr = msg.err
		m.snap = msg.snap
		m.rebuildRows()
		return m, nil

	case evaluationLoadedMsg:
		m.evalLoaded = true
		m.eval, m.evalErr = msg.eval, msg.err
		return m, nil

	case contentsLoadedMsg:
		if m.modal.Resolve(msg.token, msg.items, msg.err) {
			m.modalCursor = 0
			m.detail = nil
			if msg.err != nil {
				m.statusMessage = "Error: " + service.UserMessage(msg.err)
			}
		}
		return m, nil

	case mutationDoneMsg:
		m.pending--
		if msg.err != nil {
			if m.form != nil {
				m.form.err = service.UserMessage(msg.err)
			} else {
				m.statusMessage = "Error: " + service.UserMessage(msg.err)
			}
			return m, nil
		}
		m.form = nil
		m.statusMessage = "Created " + msg.what
		m.snap = m.svc.Cache(m.course).Snapshot()
		m.rebuildRows()
		return m, nil

	case submittedMsg:
		m.pending--
		if msg.err != nil {
			m.statusMessage = "Error: " + service.UserMessage(msg.err)
			return m, nil
		}
		m.statusMessage = "Submitted assignment " + msg.assignment
		return m, nil

	case urlOpenedMsg:
		if msg.err != nil {
			m.statusMessage = "Error: " + msg.err.Error()
		} else {
			m.statusMessage = "Opened " + msg.url
		}
		return m, nil

	case confirm.ConfirmedMsg:
		if m.submitting == nil {
			return m, nil
		}
		req := msg.Request
		m.submitting = nil
		m.submitInput.Reset()
		m.pending++
		m.statusMessage = "Working…"
		return m, submitCmd(m.svc, m.course, req.Assignment, req.URL)

	case confirm.CancelledMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.ShowAll = false
			return m, nil
		}
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.submitting != nil {
			return m.updateSubmission(msg)
		}
		if m.modal.State() != projection.ModalClosed {
			return m.updateModal(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prevKey := m.lastKey
	m.lastKey = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.pageSize()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.adjustScroll()
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.pageSize()
		m.clampCursor()
		m.adjustScroll()
	case key.Matches(msg, m.keys.GoToTop):
		// gg
		if prevKey == "g" {
			m.cursor = 0
			m.adjustScroll()
		} else {
			m.lastKey = "g"
		}
	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.FoldPrefix):
		m.lastKey = "z"
	case prevKey == "z" && msg.String() == "a":
		m.toggleFold()
	case prevKey == "z" && msg.String() == "o":
		m.openFold()
	case prevKey == "z" && msg.String() == "c":
		m.closeFold()
	case prevKey == "z" && msg.String() == "M":
		m.exp.CollapseAll()
		m.rebuildRows()
	case prevKey == "z" && msg.String() == "R":
		m.exp.ExpandAll(m.snap)
		m.rebuildRows()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleFold()
	case key.Matches(msg, m.keys.Refresh):
		m.statusMessage = "Refreshing…"
		return m, loadTreeCmd(m.svc, m.course)
	case key.Matches(msg, m.keys.AddFolder):
		if m.view == projection.InstructorView {
			m.form = newTitleForm(formFolder, models.ID{})
		}
	case key.Matches(msg, m.keys.AddSubfolder):
		row, ok := m.currentRow()
		if ok && row.Can(projection.AffordAddSubfolder) {
			m.form = newTitleForm(formSubfolder, row.ID)
		}
	case key.Matches(msg, m.keys.Activate):
		return m.activateRow()
	}
	return m, nil
}

// activateRow handles enter on a tree row: folders fold, subfolders are
// managed (instructor) or opened (student).
func (m Model) activateRow() (tea.Model, tea.Cmd) {
	row, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	switch {
	case row.Can(projection.AffordManage):
		m.form = &form{kind: formItem, folderID: row.FolderID, subfolderID: row.ID}
		m.variantPicker.Select(0)
	case row.Can(projection.AffordOpen):
		token := m.modal.Open(row.ID, row.Title)
		m.detail = nil
		return m, openSubfolderCmd(m.svc, m.course, row, token)
	default:
		m.toggleFold()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if msg.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	if f.kind == formItem && f.step == 0 {
		if msg.Type == tea.KeyEnter {
			if it, ok := m.variantPicker.SelectedItem().(variantItem); ok {
				f.chooseVariant(models.ItemType(it))
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.variantPicker, cmd = m.variantPicker.Update(msg)
		return m, cmd
	}

	switch {
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		f.focusField(f.focus + 1)
		return m, nil
	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		f.focusField(f.focus - 1)
		return m, nil
	case msg.Type == tea.KeyEnter:
		if f.focus < len(f.inputs)-1 {
			f.focusField(f.focus + 1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// submitForm sends the form. Validation happens in the service; a
// rejected form stays open with the message.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	// A second enter while the create is in flight is ignored.
	if m.isBusy() {
		return m, nil
	}
	f := m.form
	f.err = ""
	var cmd tea.Cmd
	switch f.kind {
	case formFolder:
		cmd = createFolderCmd(m.svc, m.course, f.value(0))
	case formSubfolder:
		cmd = createSubfolderCmd(m.svc, m.course, f.folderID, f.value(0))
	case formItem:
		in, err := f.itemInput()
		if err != nil {
			f.err = service.UserMessage(err)
			return m, nil
		}
		cmd = createItemCmd(m.svc, service.ItemTarget{
			CourseID:    m.course,
			FolderID:    f.folderID,
			SubfolderID: f.subfolderID,
		}, in)
	}
	m.pending++
	return m, cmd
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.modal.Items()
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.detail != nil {
			m.detail = nil
		} else {
			m.modal.Close()
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.modalCursor > 0 {
			m.modalCursor--
			m.detail = nil
		}
	case key.Matches(msg, m.keys.Down):
		if m.modalCursor < len(items)-1 {
			m.modalCursor++
			m.detail = nil
		}
	case key.Matches(msg, m.keys.Activate):
		if m.modalCursor >= len(items) {
			return m, nil
		}
		item := items[m.modalCursor]
		action := projection.Activate(item, m.role)
		switch action.Kind {
		case projection.ActionOpenURL:
			return m, openURLCmd(m.opener, action.URL)
		case projection.ActionShowDetail:
			m.detail = projection.DetailLines(item)
		case projection.ActionSubmit:
			m.submitting = &item
			m.submitInput.Reset()
			m.submitInput.Focus()
		}
	}
	return m, nil
}

func (m Model) updateSubmission(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.submitting = nil
		m.submitInput.Reset()
		return m, nil
	case tea.KeyEnter:
		m.confirm.Ask(confirm.Request{
			Assignment: m.submitting.AssignmentID(),
			Title:      m.submitting.Title(),
			URL:        m.submitInput.Value(),
		})
		return m, nil
	}
	var cmd tea.Cmd
	m.submitInput, cmd = m.submitInput.Update(msg)
	return m, cmd
}

// toggleFold toggles the fold state of the node under the cursor
func (m *Model) toggleFold() {
	row, ok := m.currentRow()
	if !ok || !row.Can(projection.AffordToggle) {
		return
	}
	m.exp.Toggle(row.ID)
	m.rebuildRows()
}

// openFold opens the fold of the node under the cursor
func (m *Model) openFold() {
	row, ok := m.currentRow()
	if !ok || !row.Can(projection.AffordToggle) {
		return
	}
	m.exp.Expand(row.ID)
	m.rebuildRows()
}

// closeFold closes the fold of the node under the cursor
func (m *Model) closeFold() {
	row, ok := m.currentRow()
	if !ok || !row.Can(projection.AffordToggle) {
		return
	}
	m.exp.Collapse(row.ID)
	m.rebuildRows()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		} else {
			m.cursor = 0
		}
	}
}

func (m *Model) pageSize() int {
	n := m.getViewportHeight() / 2
	if n < 1 {
		return 1
	}
	return n
}

// getViewportHeight calculates how many lines are available for the list.
func (m *Model) getViewportHeight() int {
	// Top margin, header, evaluation line, two spacers, status bar,
	// footer and the scroll indicator.
	const fixedLines = 9
	if m.height == 0 {
		return 20
	}
	availableHeight := m.height - fixedLines
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// adjustScroll ensures the cursor is visible in the viewport.
func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// isBusy reports whether a mutation started from this model is running.
func (m Model) isBusy() bool { return m.pending > 0 }
