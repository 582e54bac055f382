package pipeline

import (
	"time"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// Fixed positions on the summary sheet. Columns and rows are 1-based.
const (
	LabelCol      = 2 // B
	FirstMonthCol = 4 // D
	MonthDateRow  = 5
	MonthNumRow   = 6
	MonthYearRow  = 7
	HeaderRow     = 9
	TitleRow      = 2
)

// MonthColumn is one month column of the summary sheet.
type MonthColumn struct {
	Col     int
	Month   model.MonthKey
	NewYear bool // January after the first column; gets a left border
}

// ItemRow is one item line within a group block.
type ItemRow struct {
	Row      int
	ItemName string
}

// GroupBlock is the rows written for one display group.
type GroupBlock struct {
	DisplayGroup string
	Income       bool
	TitleRow     int
	Items        []ItemRow
	TotalRow     int
	PercentRow   int // 0 for the income group
}

// TotalsBlock is the bottom summary section.
type TotalsBlock struct {
	TitleRow        int
	IncomeRow       int
	ExpenseRow      int
	RemainingRow    int
	RemainingPctRow int
}

// SheetLayout holds every row and column index the renderer needs.
type SheetLayout struct {
	Columns          []MonthColumn
	Groups           []GroupBlock
	Totals           TotalsBlock
	IncomeTotalRow   int // 0 when no income group is present
	ExpenseTotalRows []int
	LastCol          int
	LastRow          int
}

// PlanOptions controls report planning.
type PlanOptions struct {
	From        time.Time
	To          time.Time
	IncomeGroup string
}

// Report bundles the aggregated views and layout of one budget run.
type Report struct {
	From    time.Time
	To      time.Time
	Months  []model.MonthKey
	Items   []model.ItemTotal
	Groups  []model.GroupTotal
	Monthly []model.MonthTotals
	Layout  SheetLayout
}

// Plan derives every report view from the ledger.
func Plan(ledger []model.LedgerEntry, opts PlanOptions) Report {
	months := ActiveMonths(ledger)
	items := ItemTotals(ledger)
	groups := GroupTotals(items)

	return Report{
		From:    opts.From,
		To:      opts.To,
		Months:  months,
		Items:   items,
		Groups:  groups,
		Monthly: MonthlyTotals(ledger, months, opts.IncomeGroup),
		Layout:  BuildLayout(months, groups, items, opts.IncomeGroup),
	}
}

// BuildLayout assigns sheet positions: one column per month starting at D,
// then one block per display group (title, items, total, and a percent of
// income row for non-income groups) separated by a blank row, then the
// totals block.
func BuildLayout(months []model.MonthKey, groups []model.GroupTotal, items []model.ItemTotal, incomeGroup string) SheetLayout {
	var l SheetLayout

	col := FirstMonthCol - 1
	for _, m := range months {
		col++
		l.Columns = append(l.Columns, MonthColumn{
			Col:     col,
			Month:   m,
			NewYear: col > FirstMonthCol && m.Month == 1,
		})
	}
	l.LastCol = col

	row := HeaderRow
	for _, g := range groups {
		row += 2
		block := GroupBlock{
			DisplayGroup: g.DisplayGroup,
			Income:       g.DisplayGroup == incomeGroup,
			TitleRow:     row,
		}
		for _, it := range items {
			if it.DisplayGroup != g.DisplayGroup {
				continue
			}
			row++
			block.Items = append(block.Items, ItemRow{Row: row, ItemName: it.ItemName})
		}
		row++
		block.TotalRow = row
		if block.Income {
			l.IncomeTotalRow = row
		} else {
			l.ExpenseTotalRows = append(l.ExpenseTotalRows, row)
			row++
			block.PercentRow = row
		}
		l.Groups = append(l.Groups, block)
	}

	row += 2
	l.Totals = TotalsBlock{
		TitleRow:        row,
		IncomeRow:       row + 1,
		ExpenseRow:      row + 2,
		RemainingRow:    row + 3,
		RemainingPctRow: row + 4,
	}
	l.LastRow = l.Totals.RemainingPctRow
	return l
}
