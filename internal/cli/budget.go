package cli

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// MonthlyTable lays out the per-month totals followed by a grand total row.
func MonthlyTable(monthly []model.MonthTotals) Table {
	var income, expenses decimal.Decimal
	rows := make([][]string, 0, len(monthly)+2)
	for _, m := range monthly {
		income = income.Add(m.Income)
		expenses = expenses.Add(m.Expenses)
		rows = append(rows, []string{
			FormatMonth(m.Month),
			FormatMoney(m.Income),
			FormatMoney(m.Expenses),
			FormatMoney(m.Remaining),
			FormatOptionalPercent(m.RemainingPct),
		})
	}

	remaining := income.Add(expenses)
	pct := "-"
	if !income.IsZero() {
		pct = FormatPercent(remaining.Div(income).InexactFloat64())
	}
	rows = append(rows, []string{"---"}, []string{
		"Total", FormatMoney(income), FormatMoney(expenses), FormatMoney(remaining), pct,
	})

	return Table{
		Title:   "Monthly Totals",
		Headers: []string{"Month", "Income", "Expenses", "Remaining", "Remaining %"},
		Rows:    rows,
	}
}
