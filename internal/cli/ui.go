package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rosterhq/roster/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long:  "Opens a full-screen kanban board. Navigate with arrows, claim and complete tasks without leaving the terminal.",
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	model := tui.New(tr, resolveActor(cfg))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
