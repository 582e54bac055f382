package store

import (
	"encoding/csv"
	"io"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// WriteCSV writes the ledger with a header row in export column order.
func WriteCSV(w io.Writer, ledger []model.LedgerEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.ExportColumns); err != nil {
		return err
	}
	for _, e := range ledger {
		if err := cw.Write(e.ExportStrings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
