package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/store"
)

var (
	flagDB     string
	flagShow   string
	flagDelete string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs saved by export --format sqlite",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagDB, "db", "budgetbook.db", "SQLite database written by export")
	runsCmd.Flags().StringVar(&flagShow, "show", "", "Print month and group totals of a run")
	runsCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete a run and its ledger")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(flagDB); err != nil {
		return fmt.Errorf("no run database at %s (run `budgetbook export --format sqlite` first)", flagDB)
	}
	db, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	switch {
	case flagDelete != "":
		if err := db.DeleteRun(flagDelete); err != nil {
			return fmt.Errorf("deleting run %s: %w", flagDelete, err)
		}
		fmt.Printf("  Deleted run %s\n", flagDelete)
		return nil
	case flagShow != "":
		return showRun(db, flagShow)
	}

	runs, err := db.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No runs stored yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		n, err := db.LedgerCount(r.ID)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.From.Format(model.DateLayout) + " → " + r.To.Format(model.DateLayout),
			r.InputsPath,
			cli.FormatNumber(int64(r.ItemCount)),
			cli.FormatNumber(int64(n)),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Stored Runs",
		Headers:  []string{"Run", "Created", "Range", "Inputs", "Items", "Rows"},
		Rows:     rows,
		TextCols: 4,
	}))
	fmt.Println()
	return nil
}

func showRun(db *store.Store, runID string) error {
	totals, err := db.MonthTotals(runID)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		return fmt.Errorf("run %s not found", runID)
	}

	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{cli.FormatMonth(t.Month), t.DisplayGroup, cli.FormatMoney(t.Amount)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Run " + runID,
		Headers:  []string{"Month", "Group", "Amount"},
		Rows:     rows,
		TextCols: 2,
	}))
	fmt.Println()
	return nil
}
