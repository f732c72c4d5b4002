package browser

import "github.com/charmbracelet/lipgloss"

var (
	colorOrange = lipgloss.Color("208")
	colorBlue   = lipgloss.Color("39")
	colorRed    = lipgloss.Color("196")
	colorGreen  = lipgloss.Color("42")

	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	infoStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	highlightStyle = lipgloss.NewStyle().Foreground(colorOrange)
	selectedStyle  = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed)
	successStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorOrange).
	Padding(0, 1)
