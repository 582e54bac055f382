package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
	"github.com/theirongolddev/budgetbook/internal/tui/theme"
)

// newTable creates a focused table styled with the active theme.
func newTable(cols []table.Column) table.Model {
	t := theme.Active
	tbl := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(10))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.TextMuted).
		Bold(true)
	styles.Cell = styles.Cell.Foreground(t.TextPrimary)
	styles.Selected = styles.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	tbl.SetStyles(styles)
	return tbl
}

func groupColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Display Group", Width: 28},
		{Title: "Total", Width: 14},
		{Title: "Items", Width: 6},
		{Title: "Share", Width: 8},
	}
}

func groupRows(rep pipeline.Report) []table.Row {
	count := make(map[string]int)
	var grand float64
	for _, it := range rep.Items {
		count[it.DisplayGroup]++
	}
	for _, g := range rep.Groups {
		grand += g.AbsAmount.InexactFloat64()
	}

	rows := make([]table.Row, 0, len(rep.Groups))
	for i, g := range rep.Groups {
		share := "-"
		if grand > 0 {
			share = cli.FormatPercent(g.AbsAmount.InexactFloat64() / grand)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			g.DisplayGroup,
			cli.FormatMoney(g.AbsAmount),
			strconv.Itoa(count[g.DisplayGroup]),
			share,
		})
	}
	return rows
}

func itemColumns() []table.Column {
	return []table.Column{
		{Title: "Item", Width: 26},
		{Title: "Display Group", Width: 20},
		{Title: "Net", Width: 14},
		{Title: "Absolute", Width: 14},
	}
}

func itemRows(items []model.ItemTotal) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row{
			it.ItemName,
			it.DisplayGroup,
			cli.FormatMoney(it.Amount),
			cli.FormatMoney(it.AbsAmount),
		})
	}
	return rows
}

func ledgerColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Day", Width: 4},
		{Title: "Item", Width: 24},
		{Title: "Group", Width: 16},
		{Title: "Frequency", Width: 10},
		{Title: "Anchor", Width: 6},
		{Title: "Amount", Width: 12},
	}
}

func ledgerRows(entries []model.LedgerEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
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

func noticeColumns() []table.Column {
	return []table.Column{
		{Title: "Item", Width: 26},
		{Title: "Month", Width: 10},
		{Title: "From", Width: 6},
		{Title: "To", Width: 6},
	}
}

func noticeRows(notices []pipeline.RepairNotice) []table.Row {
	rows := make([]table.Row, 0, len(notices))
	for _, n := range notices {
		rows = append(rows, table.Row{
			n.ItemName,
			n.Month.Label(),
			strconv.Itoa(n.From),
			strconv.Itoa(n.To),
		})
	}
	return rows
}
