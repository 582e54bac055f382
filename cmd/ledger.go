package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
)

var (
	flagItem   string
	flagBooked bool
	flagLimit  int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the expanded ledger",
	RunE:  runLedger,
}

func init() {
	ledgerCmd.Flags().StringVar(&flagItem, "item", "", "Filter to item name (substring match)")
	ledgerCmd.Flags().BoolVarP(&flagBooked, "booked", "b", false, "Only rows with a non-zero amount")
	ledgerCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "Show at most N rows (0 = all)")
	rootCmd.AddCommand(ledgerCmd)
}

func runLedger(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	run, err := buildRun(cfg)
	if err != nil {
		return err
	}

	entries := run.Expansion.Ledger
	if flagItem != "" {
		entries = pipeline.FilterByItem(entries, flagItem)
	}
	if flagBooked {
		entries = pipeline.FilterBooked(entries)
	}

	if len(entries) == 0 {
		fmt.Println("\n  No ledger rows match the filters.")
		return nil
	}

	total := len(entries)
	if flagLimit > 0 && flagLimit < total {
		entries = entries[:flagLimit]
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Ledger (%s of %s rows)", cli.FormatNumber(int64(len(entries))), cli.FormatNumber(int64(total))),
		Headers:  []string{"Date", "Day", "Item", "Group", "Frequency", "Anchor", "Amount"},
		Rows:     ledgerRows(entries),
		TextCols: 6,
	}))
	fmt.Println()
	return nil
}

func ledgerRows(entries []model.LedgerEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Day.Date.Format(model.DateLayout),
			cli.FormatDayOfWeek(e.Day.DayOfWeek),
			e.Item.ItemName,
			e.Item.DisplayGroup,
			e.Item.Frequency.String(),
			cli.FormatFrequencyDay(e.FrequencyDay),
			cli.FormatMoney(e.BudgetItemAmount),
		})
	}
	return rows
}
