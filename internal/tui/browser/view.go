package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Siddaarth-Babu/mooc/pkg/projection"
)

func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View(m.keys)
	}
	if m.confirm.Active {
		return "\n" + m.confirm.View()
	}

	header := headerStyle.Render(fmt.Sprintf("Course %s", m.course)) +
		mutedStyle.Render(fmt.Sprintf("  (%s view)", m.view))
	if projection.HeaderFor(m.snap, m.view).Affordances != nil {
		header += mutedStyle.Render("  A: add folder")
	}

	parts := []string{header}
	if m.view == projection.StudentView {
		line := "Loading evaluation..."
		if m.evalLoaded {
			line = projection.EvaluationLine(m.eval, m.evalErr)
		}
		parts = append(parts, infoStyle.Render(line))
	}
	parts = append(parts, "", m.renderBody(), "")

	if status := m.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, m.help.View(m.keys))

	// Add top margin to prevent border cutoff
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderBody() string {
	switch {
	case m.form != nil:
		return m.renderForm()
	case m.submitting != nil:
		return m.renderSubmission()
	case m.modal.State() != projection.ModalClosed:
		return m.renderModal()
	case !m.loaded:
		return "Loading..."
	case len(m.rows) == 0:
		body := mutedStyle.Render(projection.EmptyMessage)
		if m.loadErr != nil {
			body += "\n" + mutedStyle.Render("(could not load: "+m.loadErr.Error()+")")
		}
		return body
	}
	return m.renderTree()
}

func (m Model) renderTree() string {
	var b strings.Builder

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := start + viewportHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = highlightStyle.Render("▶ ")
		}

		indent := strings.Repeat("  ", row.Depth)
		var line string
		switch row.Kind {
		case projection.KindItem:
			line = indent + "• " + row.Title
		default:
			fold := "▸ "
			if row.Expanded {
				fold = "▾ "
			}
			title := row.Title
			if row.Kind == projection.KindFolder {
				title = headerStyle.Render(title)
			}
			line = indent + fold + title + mutedStyle.Render(fmt.Sprintf(" (%d)", row.Children))
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if len(m.rows) > viewportHeight {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.rows))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderForm() string {
	f := m.form
	var b strings.Builder

	switch f.kind {
	case formFolder:
		b.WriteString(headerStyle.Render("New folder") + "\n\n")
	case formSubfolder:
		b.WriteString(headerStyle.Render(fmt.Sprintf("New subfolder in folder %s", f.folderID)) + "\n\n")
	case formItem:
		if f.step == 0 {
			b.WriteString(m.variantPicker.View())
			b.WriteString("\n\n" + mutedStyle.Render("enter select • esc cancel"))
			return boxStyle.Render(b.String())
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("New %s in subfolder %s", projection.TypeLabel(f.variant), f.subfolderID)) + "\n\n")
	}

	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = highlightStyle.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("tab next • enter submit • esc cancel"))
	return boxStyle.Render(b.String())
}

func (m Model) renderModal() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.modal.Title()) + "\n\n")

	switch m.modal.State() {
	case projection.ModalLoading:
		b.WriteString("Loading...")
	case projection.ModalEmpty:
		b.WriteString(mutedStyle.Render(projection.EmptyMessage))
		if err := m.modal.Err(); err != nil {
			b.WriteString("\n" + errorStyle.Render(err.Error()))
		}
	case projection.ModalOpen:
		for i, item := range m.modal.Items() {
			cursor := "  "
			line := fmt.Sprintf("%s  %s", projection.TypeLabel(item.Type), item.Title())
			if !item.Resolved() {
				line += mutedStyle.Render("  (unavailable)")
			}
			if i == m.modalCursor {
				cursor = highlightStyle.Render("▶ ")
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		if m.detail != nil {
			b.WriteString("\n" + strings.Join(m.detail, "\n") + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("enter open • esc close"))
	return boxStyle.Render(b.String())
}

func (m Model) renderSubmission() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Submit "+m.submitting.Title()) + "\n\n")
	b.WriteString("Submission URL\n" + m.submitInput.View() + "\n")
	b.WriteString("\n" + mutedStyle.Render("enter submit • esc cancel"))
	return boxStyle.Render(b.String())
}

func (m Model) renderStatus() string {
	switch {
	case m.isBusy():
		return infoStyle.Render("Working…")
	case strings.HasPrefix(m.statusMessage, "Error:"):
		return errorStyle.Render(m.statusMessage)
	case m.statusMessage != "":
		return successStyle.Render(m.statusMessage)
	}
	return ""
}
