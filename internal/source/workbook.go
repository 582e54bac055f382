package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// Workbook tables have a title row, a header row, then data; the first
// column (A) is a margin.
const (
	workbookHeaderRows = 2
	workbookFirstCol   = 1
)

func readWorkbook(path string, opts Options) (dates, items *Table, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	items, err = sheetTable(f, opts.ItemsSheet, ItemsTable, ItemColumns)
	if err != nil {
		return nil, nil, err
	}
	if items == nil {
		return nil, nil, &model.InputShapeError{Table: ItemsTable, Reason: fmt.Sprintf("sheet %q not found", opts.ItemsSheet)}
	}

	dates, err = sheetTable(f, opts.DatesSheet, DatesTable, DateColumns)
	if err != nil {
		return nil, nil, err
	}
	return dates, items, nil
}

// sheetTable reads the data rows of a sheet positionally. It returns nil when
// the sheet does not exist.
func sheetTable(f *excelize.File, sheet, name string, columns []string) (*Table, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("looking up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	t := &Table{Name: name, Columns: columns}
	for i := workbookHeaderRows; i < len(rows); i++ {
		cells := make([]string, len(columns))
		for c := range columns {
			if src := workbookFirstCol + c; src < len(rows[i]) {
				cells[c] = rows[i][src]
			}
		}
		rec := Record{Row: i + 1, Cells: cells}
		if rec.blank() {
			continue
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}
