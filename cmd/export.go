package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/store"
)

var (
	flagFormat string
	flagOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV or into a SQLite database",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "csv", "Export format: csv or sqlite")
	exportCmd.Flags().StringVar(&flagOut, "out", "", "Output file (csv default: stdout, sqlite default: budgetbook.db)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	switch flagFormat {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("unknown export format %q (want csv or sqlite)", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	run, err := buildRun(cfg)
	if err != nil {
		return err
	}

	if flagFormat == "csv" {
		return exportCSV(run.Expansion.Ledger)
	}

	out := flagOut
	if out == "" {
		out = "budgetbook.db"
	}
	db, err := store.Open(out)
	if err != nil {
		return fmt.Errorf("opening %s: %w", out, err)
	}
	defer func() { _ = db.Close() }()

	rec := store.Run{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now(),
		From:              run.Report.From,
		To:                run.Report.To,
		InputsPath:        cfg.Inputs.Path,
		ItemCount:         len(run.Input.Items),
		DateCount:         len(run.Input.Dates),
		GeneratedCalendar: run.Input.GeneratedCalendar,
	}
	if err := db.SaveRun(rec, run.Expansion.Ledger, run.Expansion.Notices); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Saved run %s (%s ledger rows) to %s\n",
			rec.ID, cli.FormatNumber(int64(len(run.Expansion.Ledger))), out)
	}
	return nil
}

func exportCSV(ledger []model.LedgerEntry) error {
	var w io.Writer = os.Stdout
	if flagOut != "" && flagOut != "-" {
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := store.WriteCSV(w, ledger); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	if !flagQuiet && flagOut != "" && flagOut != "-" {
		fmt.Fprintf(os.Stderr, "  Wrote %s ledger rows to %s\n", cli.FormatNumber(int64(len(ledger))), flagOut)
	}
	return nil
}
