package tui

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
	"github.com/theirongolddev/budgetbook/internal/tui/components"
)

// overviewMetrics sums the monthly totals over the whole run.
func overviewMetrics(monthly []model.MonthTotals) []components.Metric {
	var income, expenses decimal.Decimal
	for _, m := range monthly {
		income = income.Add(m.Income)
		expenses = expenses.Add(m.Expenses)
	}
	remaining := income.Add(expenses)

	pct := "-"
	if !income.IsZero() {
		pct = cli.FormatPercent(remaining.Div(income).InexactFloat64())
	}

	months := "no booked months"
	if n := len(monthly); n > 0 {
		months = cli.FormatMonth(monthly[0].Month) + " to " + cli.FormatMonth(monthly[n-1].Month)
	}

	return []components.Metric{
		{Label: "Income", Value: cli.FormatMoney(income), Note: months},
		{Label: "Expenses", Value: cli.FormatMoney(expenses), Negative: expenses.IsNegative()},
		{Label: "Remaining", Value: cli.FormatMoney(remaining), Negative: remaining.IsNegative()},
		{Label: "Remaining %", Value: pct, Negative: remaining.IsNegative()},
	}
}

func (a App) renderOverviewTab(cw int) string {
	rep := a.run.Report

	var b strings.Builder
	b.WriteString(components.MetricCardRow(overviewMetrics(rep.Monthly), cw))
	b.WriteString("\n")

	if len(rep.Monthly) == 0 {
		b.WriteString(components.ContentCard("Monthly totals", "Nothing is booked in this range.", cw))
		return b.String()
	}

	remaining := make([]float64, len(rep.Monthly))
	for i, m := range rep.Monthly {
		remaining[i] = m.Remaining.InexactFloat64()
	}
	trend := cli.RenderSparkline(remaining) + "  " +
		cli.FormatMonth(rep.Monthly[0].Month) + " to " + cli.FormatMonth(rep.Monthly[len(rep.Monthly)-1].Month)

	b.WriteString(components.ContentCard("Remaining balance by month", trend, cw))
	b.WriteString("\n")
	b.WriteString(cli.RenderTable(cli.MonthlyTable(rep.Monthly)))
	b.WriteString(topGroupBars(rep, cw))
	return b.String()
}

// topGroupBars draws one bar per display group scaled to the largest group.
func topGroupBars(rep pipeline.Report, cw int) string {
	if len(rep.Groups) == 0 {
		return ""
	}
	maxVal := rep.Groups[0].AbsAmount.InexactFloat64()
	barW := cw / 3
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, g := range rep.Groups {
		label := g.DisplayGroup + "  " + cli.FormatMoney(g.AbsAmount)
		b.WriteString(cli.RenderHorizontalBar(label, g.AbsAmount.InexactFloat64(), maxVal, barW))
		b.WriteString("\n")
	}
	return b.String()
}
