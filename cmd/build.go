package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/report"
)

var (
	flagEdit     bool
	flagOutDir   string
	flagTemplate string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the budget workbook",
	RunE:  runBuild,
}

func init() {
	addBuildFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func addBuildFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&flagEdit, "edit", "e", false, "Open the inputs for editing before building")
	c.Flags().StringVarP(&flagOutDir, "out-dir", "o", "", "Directory for the generated workbook")
	c.Flags().StringVar(&flagTemplate, "template", "", "Template workbook to start from")
}

func runBuild(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagEdit {
		done, err := editInputs(cfg.Inputs.Path)
		if err != nil {
			return err
		}
		if !done {
			fmt.Fprintln(os.Stderr, "  Build cancelled.")
			return nil
		}
	}

	run, err := buildRun(cfg)
	if err != nil {
		return err
	}

	if len(run.Report.Months) == 0 {
		fmt.Println("\n  Nothing is booked in the selected range; the summary sheet will be empty.")
	}

	opts := reportOptions(cfg)
	opts.RunID = uuid.NewString()
	opts.Now = time.Now()

	dir := cfg.Output.Dir
	if flagOutDir != "" {
		dir = flagOutDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path, err := report.Write(dir, run.Report, run.Expansion.Ledger, opts)
	if err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s (%d months, %d display groups)\n",
			path, len(run.Report.Months), len(run.Report.Groups))
	}
	return nil
}

// reportOptions maps the [output] and [report] sections onto renderer options.
func reportOptions(cfg config.Config) report.Options {
	opts := report.DefaultOptions()
	if cfg.Output.SummarySheet != "" {
		opts.SummarySheet = cfg.Output.SummarySheet
	}
	if cfg.Output.DataSheet != "" {
		opts.DataSheet = cfg.Output.DataSheet
	}
	opts.Template = cfg.Output.Template
	if flagTemplate != "" {
		opts.Template = flagTemplate
	}
	if cfg.Report.FontName != "" {
		opts.FontName = cfg.Report.FontName
	}
	if cfg.Report.FontSize > 0 {
		opts.FontSize = cfg.Report.FontSize
	}
	if cfg.Report.Zoom > 0 {
		opts.Zoom = cfg.Report.Zoom
	}
	return opts
}

// editInputs opens the inputs with the system opener and waits until the
// user confirms the edits are saved.
func editInputs(path string) (bool, error) {
	if err := openFile(path); err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}

	done := true
	err := huh.NewConfirm().
		Title("Done editing " + path + "?").
		Description("Save and close the file, then build.").
		Affirmative("Build").
		Negative("Cancel").
		Value(&done).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return done, err
}

func openFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", path)
	case "windows":
		c = exec.Command("cmd", "/c", "start", "", path)
	default:
		c = exec.Command("xdg-open", path)
	}
	return c.Start()
}
