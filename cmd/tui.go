package cmd

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
	"github.com/theirongolddev/budgetbook/internal/tui"
	"github.com/theirongolddev/budgetbook/internal/tui/theme"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"tui"},
	Short:   "Browse the budget in an interactive TUI",
	RunE:    runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Progress lines and log records would corrupt the alternate screen.
	// Repair notices are shown on the Notices tab instead.
	flagQuiet = true
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app := tui.NewApp(cfg, configPath(), func(c config.Config) (*pipeline.Run, error) {
		return buildRun(c)
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
