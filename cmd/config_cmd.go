package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", configPath())
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Budget]")
	from, to, err := cfg.Budget.Range(time.Now())
	if err != nil {
		fmt.Printf("    Range:    invalid (%v)\n", err)
	} else {
		fmt.Printf("    Range:    %s → %s\n", from.Format(model.DateLayout), to.Format(model.DateLayout))
	}
	fmt.Println()

	fmt.Println("  [Inputs]")
	fmt.Printf("    Path:              %s\n", cfg.Inputs.Path)
	fmt.Printf("    Dates sheet:       %s\n", cfg.Inputs.DatesSheet)
	fmt.Printf("    Items sheet:       %s\n", cfg.Inputs.ItemsSheet)
	fmt.Printf("    Generate calendar: %v\n", cfg.Inputs.GenerateCalendar)
	fmt.Println()

	fmt.Println("  [Output]")
	fmt.Printf("    Directory: %s\n", cfg.Output.Dir)
	if cfg.Output.Template != "" {
		fmt.Printf("    Template:  %s\n", cfg.Output.Template)
	}
	fmt.Printf("    Sheets:    %s, %s\n", cfg.Output.SummarySheet, cfg.Output.DataSheet)
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Income group: %s\n", cfg.Report.IncomeGroup)
	fmt.Printf("    Font:         %s %.0f\n", cfg.Report.FontName, cfg.Report.FontSize)
	fmt.Printf("    Zoom:         %.0f%%\n", cfg.Report.Zoom)
	fmt.Println()

	fmt.Println("  [Seasonality]")
	mult, err := cfg.Seasonality.Multipliers()
	switch {
	case err != nil:
		fmt.Printf("    invalid: %v\n", err)
	case len(mult) == 0:
		fmt.Println("    none (every month 1.0)")
	default:
		months := make([]int, 0, len(mult))
		for m := range mult {
			months = append(months, m)
		}
		sort.Ints(months)
		for _, m := range months {
			fmt.Printf("    %s: %s\n", time.Month(m), mult[m].String())
		}
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `budgetbook setup` to reconfigure.")
	return nil
}
