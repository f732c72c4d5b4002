package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/internal/tui/browser"
	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

// NewTuiCmd creates the `mooc tui` command.
func NewTuiCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the course interactively",
		Long: `Launch the interactive course browser. Instructors and admins can
create folders, subfolders and items; students open subfolders, follow
links and submit assignments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}

			model := browser.New(s, course, s.Role(), projection.SystemOpener{})
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	return cmd
}
