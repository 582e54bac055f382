package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// Data sheet number formats.
const (
	dateFmt   = "yyyy-mm-dd"
	amountFmt = "#,##0.00"
)

// writeData replaces the data sheet with the ledger in export column order.
func writeData(f *excelize.File, opts Options, ledger []model.LedgerEntry) error {
	idx, err := f.GetSheetIndex(opts.DataSheet)
	if err != nil {
		return err
	}
	if idx >= 0 {
		if err := f.DeleteSheet(opts.DataSheet); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(opts.DataSheet); err != nil {
		return err
	}

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(dateFmt)})
	if err != nil {
		return err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(amountFmt)})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(opts.DataSheet)
	if err != nil {
		return err
	}

	header := make([]any, len(model.ExportColumns))
	for i, c := range model.ExportColumns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	styles := columnStyles(dateStyle, amountStyle)
	for i, e := range ledger {
		values := e.ExportValues()
		row := make([]any, len(values))
		for c, v := range values {
			if s := styles[c]; s != 0 && v != nil {
				row[c] = excelize.Cell{StyleID: s, Value: v}
				continue
			}
			row[c] = v
		}
		if err := sw.SetRow(cell(1, i+2), row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// columnStyles maps export column positions to cell styles.
func columnStyles(dateStyle, amountStyle int) []int {
	styles := make([]int, len(model.ExportColumns))
	for _, name := range []string{"date", "frequency_date", "start_date", "end_date"} {
		styles[model.ExportColumnIndex(name)-1] = dateStyle
	}
	for _, name := range []string{"item_amount", "budget_item_amount"} {
		styles[model.ExportColumnIndex(name)-1] = amountStyle
	}
	return styles
}

func strPtr(s string) *string { return &s }
