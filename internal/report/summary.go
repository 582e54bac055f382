package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
)

const titleFontSize = 16

// summaryWriter lays out the summary sheet from a planned SheetLayout.
type summaryWriter struct {
	f      *excelize.File
	sheet  string
	data   string // formula prefix of the data sheet, e.g. "Data!"
	layout pipeline.SheetLayout
	styles *styleSheet
}

func writeSummary(f *excelize.File, opts Options, rep pipeline.Report) error {
	w := &summaryWriter{
		f:      f,
		sheet:  opts.SummarySheet,
		data:   sheetRef(opts.DataSheet),
		layout: rep.Layout,
		styles: newStyleSheet(f, opts.SummarySheet, opts),
	}

	steps := []func() error{
		func() error { return w.title(rep) },
		w.monthHeaders,
		w.groups,
		w.totals,
		w.newYearBorders,
		w.styles.flush,
		func() error { return w.view(opts) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (w *summaryWriter) set(col, row int, v any) error {
	return w.f.SetCellValue(w.sheet, cell(col, row), v)
}

// formulaRow writes one formula per month column. fn receives the column
// letter.
func (w *summaryWriter) formulaRow(row int, fn func(col string) string) error {
	for _, mc := range w.layout.Columns {
		if err := w.f.SetCellFormula(w.sheet, cell(mc.Col, row), fn(colName(mc.Col))); err != nil {
			return err
		}
	}
	return nil
}

// title writes B2, keeping a template's own title text when present.
func (w *summaryWriter) title(rep pipeline.Report) error {
	ref := cell(pipeline.LabelCol, pipeline.TitleRow)
	existing, err := w.f.GetCellValue(w.sheet, ref)
	if err != nil {
		return err
	}
	tmpl := defaultTitle
	if strings.Contains(existing, minDatePlaceholder) || strings.Contains(existing, maxDatePlaceholder) {
		tmpl = existing
	}
	if err := w.f.SetCellValue(w.sheet, ref, title(tmpl, rep)); err != nil {
		return err
	}
	w.styles.apply(pipeline.LabelCol, pipeline.TitleRow, pipeline.LabelCol, pipeline.TitleRow, func(cs *cellStyle) {
		cs.Bold = true
		cs.Size = titleFontSize
	})
	return nil
}

// monthHeaders writes the hidden month reference rows and the visible month
// header row.
func (w *summaryWriter) monthHeaders() error {
	for _, mc := range w.layout.Columns {
		col := colName(mc.Col)
		dateFormula := fmt.Sprintf("DATE(%s%d,%s%d,1)", col, pipeline.MonthYearRow, col, pipeline.MonthNumRow)
		if err := w.f.SetCellFormula(w.sheet, cell(mc.Col, pipeline.MonthDateRow), dateFormula); err != nil {
			return err
		}
		if err := w.set(mc.Col, pipeline.MonthNumRow, mc.Month.Month); err != nil {
			return err
		}
		if err := w.set(mc.Col, pipeline.MonthYearRow, mc.Month.Year); err != nil {
			return err
		}
		header := fmt.Sprintf("%s%d", col, pipeline.MonthDateRow)
		if err := w.f.SetCellFormula(w.sheet, cell(mc.Col, pipeline.HeaderRow), header); err != nil {
			return err
		}
		w.styles.row(mc.Col, mc.Col, pipeline.HeaderRow, all(bold, month))
	}

	for _, row := range []int{pipeline.MonthDateRow, pipeline.MonthNumRow, pipeline.MonthYearRow} {
		if err := w.f.SetRowVisible(w.sheet, row, false); err != nil {
			return err
		}
	}
	return nil
}

func (w *summaryWriter) groups() error {
	for _, g := range w.layout.Groups {
		if err := w.group(g); err != nil {
			return fmt.Errorf("group %q: %w", g.DisplayGroup, err)
		}
	}
	return nil
}

// group writes a display group block: the title, one SUMIFS row per item, a
// total row, and for expense groups the share of income.
func (w *summaryWriter) group(g pipeline.GroupBlock) error {
	first, last := pipeline.LabelCol, w.layout.LastCol

	if err := w.set(first, g.TitleRow, g.DisplayGroup); err != nil {
		return err
	}
	w.styles.row(first, first, g.TitleRow, all(bold, underline))
	w.styles.row(first, last, g.TitleRow, bottomThin)

	amount := w.data + absCol("budget_item_amount")
	criteria := []string{
		w.data + absCol("item_name"), "$B%[2]d",
		w.data + absCol("display_group"), fmt.Sprintf("$B$%d", g.TitleRow),
		w.data + absCol("year"), "%[1]s$" + fmt.Sprint(pipeline.MonthYearRow),
		w.data + absCol("month_number"), "%[1]s$" + fmt.Sprint(pipeline.MonthNumRow),
	}
	sumifs := "IFERROR(SUMIFS(" + amount + "," + strings.Join(criteria, ",") + "),0)"

	for _, it := range g.Items {
		if err := w.set(first, it.Row, it.ItemName); err != nil {
			return err
		}
		row := it.Row
		if err := w.formulaRow(row, func(col string) string {
			return fmt.Sprintf(sumifs, col, row)
		}); err != nil {
			return err
		}
		w.styles.row(pipeline.FirstMonthCol, last, row, number)
	}
	if n := len(g.Items); n > 0 {
		w.styles.row(first, last, g.Items[n-1].Row, bottomThin)
	}

	if err := w.set(first, g.TotalRow, "Total "+g.DisplayGroup); err != nil {
		return err
	}
	if err := w.formulaRow(g.TotalRow, func(col string) string {
		return fmt.Sprintf("SUM(%s%d:%s%d)", col, g.TitleRow+1, col, g.TotalRow-1)
	}); err != nil {
		return err
	}
	w.styles.row(first, first, g.TotalRow, bold)
	w.styles.row(pipeline.FirstMonthCol, last, g.TotalRow, all(bold, number))
	w.styles.row(first, last, g.TotalRow, bottomThin)

	if g.PercentRow == 0 {
		return nil
	}
	if err := w.set(first, g.PercentRow, "% of Income"); err != nil {
		return err
	}
	w.styles.row(first, first, g.PercentRow, italic)
	if income := w.layout.IncomeTotalRow; income > 0 {
		if err := w.formulaRow(g.PercentRow, func(col string) string {
			return fmt.Sprintf("IFERROR(-%s%d/%s%d,0)", col, g.TotalRow, col, income)
		}); err != nil {
			return err
		}
	}
	w.styles.row(pipeline.FirstMonthCol, last, g.PercentRow, all(italic, percent))
	return nil
}

// totals writes the bottom block: income, expenses, remaining balance, and
// remaining share of income.
func (w *summaryWriter) totals() error {
	t := w.layout.Totals
	first, last := pipeline.LabelCol, w.layout.LastCol
	income := w.layout.IncomeTotalRow

	labels := []struct {
		row   int
		label string
	}{
		{t.TitleRow, "Totals"},
		{t.IncomeRow, "Income"},
		{t.ExpenseRow, "Expenses"},
		{t.RemainingRow, "Remaining Balance"},
		{t.RemainingPctRow, "Remaining %"},
	}
	for _, l := range labels {
		if err := w.set(first, l.row, l.label); err != nil {
			return err
		}
	}

	formulas := []struct {
		row int
		fn  func(col string) string
	}{
		{t.IncomeRow, func(col string) string {
			if income == 0 {
				return "0"
			}
			return fmt.Sprintf("%s%d", col, income)
		}},
		{t.ExpenseRow, func(col string) string {
			if len(w.layout.ExpenseTotalRows) == 0 {
				return "0"
			}
			refs := make([]string, len(w.layout.ExpenseTotalRows))
			for i, r := range w.layout.ExpenseTotalRows {
				refs[i] = fmt.Sprintf("%s%d", col, r)
			}
			return "SUM(" + strings.Join(refs, ",") + ")"
		}},
		{t.RemainingRow, func(col string) string {
			return fmt.Sprintf("%s%d+%s%d", col, t.ExpenseRow, col, t.IncomeRow)
		}},
		{t.RemainingPctRow, func(col string) string {
			return fmt.Sprintf("IFERROR(%s%d/%s%d,0)", col, t.RemainingRow, col, t.IncomeRow)
		}},
	}
	for _, fr := range formulas {
		if err := w.formulaRow(fr.row, fr.fn); err != nil {
			return err
		}
	}

	w.styles.row(first, first, t.TitleRow, all(bold, underline))
	w.styles.row(pipeline.FirstMonthCol, last, t.IncomeRow, number)
	w.styles.row(pipeline.FirstMonthCol, last, t.ExpenseRow, number)
	w.styles.row(first, last, t.ExpenseRow, bottomDouble)
	w.styles.row(first, first, t.RemainingRow, bold)
	w.styles.row(pipeline.FirstMonthCol, last, t.RemainingRow, all(bold, number))
	w.styles.row(first, last, t.RemainingRow, bottomThin)
	w.styles.row(first, first, t.RemainingPctRow, italic)
	w.styles.row(pipeline.FirstMonthCol, last, t.RemainingPctRow, all(italic, percent))
	return nil
}

// newYearBorders draws a left border down each January column after the
// first month.
func (w *summaryWriter) newYearBorders() error {
	for _, mc := range w.layout.Columns {
		if mc.NewYear {
			w.styles.apply(mc.Col, pipeline.HeaderRow, mc.Col, w.layout.LastRow, leftEdge)
		}
	}
	return nil
}

func (w *summaryWriter) view(opts Options) error {
	if err := w.f.SetColWidth(w.sheet, "A", "A", 2); err != nil {
		return err
	}
	if err := w.f.SetColWidth(w.sheet, "B", "B", 28); err != nil {
		return err
	}
	if w.layout.LastCol >= pipeline.FirstMonthCol {
		if err := w.f.SetColWidth(w.sheet, colName(pipeline.FirstMonthCol), colName(w.layout.LastCol), 12); err != nil {
			return err
		}
	}
	zoom := opts.Zoom
	showGrid := false
	return w.f.SetSheetView(w.sheet, 0, &excelize.ViewOptions{ZoomScale: &zoom, ShowGridLines: &showGrid})
}

// absCol returns the absolute whole-column reference of an export column,
// e.g. "$U:$U".
func absCol(name string) string {
	c := colName(model.ExportColumnIndex(name))
	return "$" + c + ":$" + c
}
