package cmd

import (
	"fmt"

	"tobaccoform/internal/api"
	"tobaccoform/internal/config"
	"tobaccoform/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI (same as default)",
	Long: `Start the Terminal User Interface for the tobacco catalog.
From the menu you can add a tobacco or browse the known brands.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the tobacco entry form directly",
	RunE:  runForm,
}

func runTUI(cmd *cobra.Command, args []string) error {
	return startProgram(tui.MenuScreen)
}

func runForm(cmd *cobra.Command, args []string) error {
	return startProgram(tui.FormScreen)
}

func startProgram(screen tui.Screen) error {
	// The alt screen owns the terminal, so diagnostics always go to a file.
	logger := newLogger(config.DefaultTUILogFile)
	defer logger.Sync()

	client := api.NewClient(cfg.APIURL)
	model := tui.NewModel(client, logger, screen)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
