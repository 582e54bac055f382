// Package pipeline expands budget items over a calendar and aggregates the
// resulting ledger into report views.
package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// ActiveMonths returns the distinct months in which at least one entry books a
// positive amount, in the order they are first encountered in the ledger.
func ActiveMonths(ledger []model.LedgerEntry) []model.MonthKey {
	seen := make(map[model.MonthKey]struct{})
	var months []model.MonthKey
	for _, e := range ledger {
		if !e.BudgetItemAmount.IsPositive() {
			continue
		}
		m := e.Day.Month()
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	return months
}

// ItemTotals sums amounts per (item name, display group) and sorts the result
// by absolute total, largest first. Ties keep first-appearance order.
func ItemTotals(ledger []model.LedgerEntry) []model.ItemTotal {
	type itemKey struct{ name, group string }

	idx := make(map[itemKey]int)
	var totals []model.ItemTotal
	for _, e := range ledger {
		k := itemKey{e.Item.ItemName, e.Item.DisplayGroup}
		i, ok := idx[k]
		if !ok {
			i = len(totals)
			idx[k] = i
			totals = append(totals, model.ItemTotal{
				ItemName:     k.name,
				DisplayGroup: k.group,
				Amount:       decimal.Zero,
				AbsAmount:    decimal.Zero,
			})
		}
		totals[i].Amount = totals[i].Amount.Add(e.BudgetItemAmount)
		totals[i].AbsAmount = totals[i].AbsAmount.Add(e.BudgetItemAmount.Abs())
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].AbsAmount.GreaterThan(totals[j].AbsAmount)
	})
	return totals
}

// GroupTotals sums the absolute item totals per display group, largest first.
// Ties keep the order in which groups first appear in items.
func GroupTotals(items []model.ItemTotal) []model.GroupTotal {
	idx := make(map[string]int)
	var groups []model.GroupTotal
	for _, it := range items {
		i, ok := idx[it.DisplayGroup]
		if !ok {
			i = len(groups)
			idx[it.DisplayGroup] = i
			groups = append(groups, model.GroupTotal{DisplayGroup: it.DisplayGroup, AbsAmount: decimal.Zero})
		}
		groups[i].AbsAmount = groups[i].AbsAmount.Add(it.AbsAmount)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].AbsAmount.GreaterThan(groups[j].AbsAmount)
	})
	return groups
}

// MonthlyTotals computes income, expenses, and the remaining balance for each
// of the given months. Income is the signed total of incomeGroup; every other
// display group counts as expenses.
func MonthlyTotals(ledger []model.LedgerEntry, months []model.MonthKey, incomeGroup string) []model.MonthTotals {
	byMonth := make(map[model.MonthKey]*model.MonthTotals, len(months))
	out := make([]model.MonthTotals, len(months))
	for i, m := range months {
		out[i] = model.MonthTotals{Month: m, Income: decimal.Zero, Expenses: decimal.Zero}
		byMonth[m] = &out[i]
	}

	for _, e := range ledger {
		mt, ok := byMonth[e.Day.Month()]
		if !ok {
			continue
		}
		if e.Item.DisplayGroup == incomeGroup {
			mt.Income = mt.Income.Add(e.BudgetItemAmount)
		} else {
			mt.Expenses = mt.Expenses.Add(e.BudgetItemAmount)
		}
	}

	for i := range out {
		out[i].Remaining = out[i].Income.Add(out[i].Expenses)
		if !out[i].Income.IsZero() {
			pct := out[i].Remaining.Div(out[i].Income).InexactFloat64()
			out[i].RemainingPct = &pct
		}
	}
	return out
}

// FilterByItem returns entries whose item name contains substr, ignoring case.
func FilterByItem(ledger []model.LedgerEntry, substr string) []model.LedgerEntry {
	if substr == "" {
		return ledger
	}
	var result []model.LedgerEntry
	for _, e := range ledger {
		if containsIgnoreCase(e.Item.ItemName, substr) {
			result = append(result, e)
		}
	}
	return result
}

// FilterBooked returns entries with a non-zero amount.
func FilterBooked(ledger []model.LedgerEntry) []model.LedgerEntry {
	var result []model.LedgerEntry
	for _, e := range ledger {
		if !e.BudgetItemAmount.IsZero() {
			result = append(result, e)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
