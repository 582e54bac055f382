// Package cmd implements the budgetbook CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
	"github.com/theirongolddev/budgetbook/internal/source"
)

var (
	flagConfig  string
	flagInputs  string
	flagFrom    string
	flagTo      string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetbook",
	Short: "Personal budget workbook generator",
	Long: "Expand recurring budget items over a calendar and render the result " +
		"as a monthly budget workbook.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runBuild,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&flagInputs, "inputs", "i", "", "Inputs workbook or CSV directory")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "First budget date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Last budget date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug details")

	addBuildFlags(rootCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagInputs != "" {
		cfg.Inputs.Path = flagInputs
	}
	if flagFrom != "" {
		cfg.Budget.MinDate = flagFrom
	}
	if flagTo != "" {
		cfg.Budget.MaxDate = flagTo
	}
	return cfg, nil
}

// loadOptions turns a config into pipeline options.
func loadOptions(cfg config.Config, now time.Time) (pipeline.LoadOptions, error) {
	from, to, err := cfg.Budget.Range(now)
	if err != nil {
		return pipeline.LoadOptions{}, err
	}
	seasonality, err := cfg.Seasonality.Multipliers()
	if err != nil {
		return pipeline.LoadOptions{}, err
	}

	sheets := source.DefaultOptions()
	if cfg.Inputs.DatesSheet != "" {
		sheets.DatesSheet = cfg.Inputs.DatesSheet
	}
	if cfg.Inputs.ItemsSheet != "" {
		sheets.ItemsSheet = cfg.Inputs.ItemsSheet
	}

	return pipeline.LoadOptions{
		InputsPath:       cfg.Inputs.Path,
		Sheets:           sheets,
		From:             from,
		To:               to,
		GenerateCalendar: cfg.Inputs.GenerateCalendar,
		Seasonality:      seasonality,
	}, nil
}

// buildRun is the shared load path used by all commands. Repair notices are
// logged, never fatal.
func buildRun(cfg config.Config) (*pipeline.Run, error) {
	opts, err := loadOptions(cfg, time.Now())
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", opts.InputsPath)
	}
	slog.Debug("loading inputs",
		"path", opts.InputsPath,
		"from", opts.From.Format("2006-01-02"),
		"to", opts.To.Format("2006-01-02"),
		"generate_calendar", opts.GenerateCalendar)

	run, err := pipeline.Build(opts, cfg.Report.IncomeGroup)
	if err != nil {
		return nil, err
	}

	for _, n := range run.Expansion.Notices {
		slog.Info(n.String(),
			"item_id", n.ItemID,
			"month", n.Month.Label(),
			"from", n.From,
			"to", n.To)
	}

	if !flagQuiet {
		calendar := "dates table"
		if run.Input.GeneratedCalendar {
			calendar = "generated calendar"
		}
		fmt.Fprintf(os.Stderr, "  Expanded %d items over %s days (%s) into %s ledger rows\n",
			len(run.Input.Items),
			cli.FormatNumber(int64(len(run.Input.Dates))),
			calendar,
			cli.FormatNumber(int64(len(run.Expansion.Ledger))),
		)
	}
	return run, nil
}
