package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitConfirmation(t *testing.T) {
	m := New(lipgloss.Color("208"))
	assert.Empty(t, m.View())

	req := Request{Assignment: "A1", Title: "Homework 1", URL: "https://github.com/me/hw1"}
	m.Ask(req)
	view := m.View()
	assert.Contains(t, view, "Submit Homework 1?")
	assert.Contains(t, view, "https://github.com/me/hw1")
	assert.Contains(t, view, "y submit • n/esc edit link")

	// enter is not a yes
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.Active)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.Equal(t, ConfirmedMsg{Request: req}, cmd())
	assert.False(t, m.Active)
}

func TestBackOutKeepsRequest(t *testing.T) {
	m := New(lipgloss.Color("208"))
	m.Ask(Request{Assignment: "A2"})
	assert.Contains(t, m.View(), "Submit assignment A2?")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{Request: Request{Assignment: "A2"}}, cmd())
	assert.Equal(t, "A2", m.Request().Assignment)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Nil(t, cmd, "inactive dialog ignores keys")
}
