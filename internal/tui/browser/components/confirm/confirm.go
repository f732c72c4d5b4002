// Package confirm is the last step of an assignment submission: it shows
// what is about to be sent and waits for an explicit yes.
package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Request is the submission being confirmed.
type Request struct {
	Assignment string
	Title      string
	URL        string
}

// ConfirmedMsg carries the request the user accepted.
type ConfirmedMsg struct{ Request Request }

// CancelledMsg is sent when the user backs out to edit the link.
type CancelledMsg struct{ Request Request }

// Model is the submission confirmation dialog.
type Model struct {
	Active  bool
	request Request
	keys    keyMap
	border  lipgloss.TerminalColor
}

// New creates an inactive dialog drawn with the given border color.
func New(border lipgloss.TerminalColor) Model {
	return Model{keys: defaultKeyMap, border: border}
}

// Ask shows the dialog for r.
func (m *Model) Ask(r Request) {
	m.request = r
	m.Active = true
}

// Request returns the submission on screen.
func (m Model) Request() Request { return m.request }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.Active || !ok {
		return m, nil
	}

	r := m.request
	switch {
	case key.Matches(keyMsg, m.keys.Submit):
		m.Active = false
		return m, func() tea.Msg { return ConfirmedMsg{Request: r} }
	case key.Matches(keyMsg, m.keys.Back):
		m.Active = false
		return m, func() tea.Msg { return CancelledMsg{Request: r} }
	}
	return m, nil
}

func (m Model) View() string {
	if !m.Active {
		return ""
	}

	title := m.request.Title
	if title == "" {
		title = "assignment " + m.request.Assignment
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Submit " + title + "?"),
		"",
		"Assignment: " + m.request.Assignment,
		"Link:       " + m.request.URL,
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.border).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	hints := lipgloss.NewStyle().
		Faint(true).
		Width(lipgloss.Width(box)).
		Align(lipgloss.Center).
		Render(m.keys.hint())

	return lipgloss.JoinVertical(lipgloss.Left, box, hints)
}

type keyMap struct {
	Submit key.Binding
	Back   key.Binding
}

func (k keyMap) hint() string {
	var parts []string
	for _, b := range []key.Binding{k.Submit, k.Back} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

var defaultKeyMap = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "edit link"),
	),
}
