package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetbook/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(id int, name string, amount string, freq model.FrequencyType) model.BudgetItem {
	return model.BudgetItem{
		BudgetItemID: id,
		IsActive:     true,
		ItemName:     name,
		DisplayGroup: "Home & Utilities",
		ItemType:     "Expense",
		ItemAmount:   dec(amount),
		Frequency:    freq,
	}
}

func income(id int, name string, amount string, freq model.FrequencyType) model.BudgetItem {
	it := expense(id, name, amount, freq)
	it.DisplayGroup = "Income"
	it.ItemType = model.IncomeType
	return it
}

// expandOne expands a single item and returns the booked dates and amounts.
func expandOne(t *testing.T, item model.BudgetItem, from, to time.Time) map[string]decimal.Decimal {
	t.Helper()
	exp, err := Expand(GenerateCalendar(from, to, nil), []model.BudgetItem{item})
	require.NoError(t, err)

	booked := make(map[string]decimal.Decimal)
	for _, e := range exp.Ledger {
		if !e.BudgetItemAmount.IsZero() {
			booked[e.Day.Key()] = e.BudgetItemAmount
		}
	}
	return booked
}

func TestAmountFor_Daily(t *testing.T) {
	item := income(1, "Tips", "12.50", model.Daily)
	item.IsSeasonality = true

	seasonality := map[int]decimal.Decimal{12: dec("1.5")}
	for _, d := range GenerateCalendar(date(2024, 11, 25), date(2024, 12, 5), seasonality) {
		got, err := AmountFor(model.LedgerEntry{Day: d, Item: item})
		require.NoError(t, err)

		want := dec("12.50").Mul(d.SeasonalityMultiplier)
		assert.True(t, want.Equal(got), "%s: want %s got %s", d.Key(), want, got)
	}
}

func TestAmountFor_Weekly(t *testing.T) {
	for day := 1; day <= 7; day++ {
		item := expense(1, "Groceries", "80", model.Weekly)
		item.FrequencyDay = intPtr(day)

		for _, d := range GenerateCalendar(date(2024, 3, 1), date(2024, 4, 30), nil) {
			got, err := AmountFor(model.LedgerEntry{Day: d, Item: item, FrequencyDay: item.FrequencyDay})
			require.NoError(t, err)
			if d.DayOfWeek == day {
				assert.True(t, dec("-80").Equal(got), d.Key())
			} else {
				assert.True(t, got.IsZero(), d.Key())
			}
		}
	}
}

func TestAmountFor_WeeklyDefaultsToFirstWeekday(t *testing.T) {
	booked := expandOne(t, expense(1, "Laundry", "5", model.Weekly), date(2024, 6, 1), date(2024, 6, 30))
	assert.Len(t, booked, 5)
	for key := range booked {
		d, err := time.Parse(model.DateLayout, key)
		require.NoError(t, err)
		assert.Equal(t, time.Sunday, d.Weekday())
	}
}

func TestAmountFor_BiWeekly(t *testing.T) {
	item := income(1, "Salary", "2500", model.BiWeekly)
	item.StartDate = date(2024, 1, 5)

	from, to := date(2024, 1, 1), date(2025, 3, 31)
	booked := expandOne(t, item, from, to)

	var want []string
	for d := item.StartDate; !d.After(to); d = d.AddDate(0, 0, 14) {
		want = append(want, d.Format(model.DateLayout))
	}
	require.Len(t, booked, len(want))
	for _, key := range want {
		amt, ok := booked[key]
		if assert.True(t, ok, "expected booking on %s", key) {
			assert.True(t, dec("2500").Equal(amt))
		}
	}
	assert.Contains(t, booked, "2024-01-05")
	assert.Contains(t, booked, "2024-01-19")
	assert.NotContains(t, booked, "2024-01-12")
	assert.Contains(t, booked, "2025-01-03", "cadence continues across the year boundary")
}

func TestAmountFor_BiWeeklyWithoutStartDate(t *testing.T) {
	item := income(1, "Salary", "2500", model.BiWeekly)
	d := GenerateCalendar(date(2024, 1, 5), date(2024, 1, 5), nil)[0]

	_, err := AmountFor(model.LedgerEntry{Day: d, Item: item})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestAmountFor_MonthlyShortMonth(t *testing.T) {
	item := expense(1, "Rent", "100", model.Monthly)
	item.FrequencyDay = intPtr(31)

	booked := expandOne(t, item, date(2024, 2, 1), date(2024, 2, 29))
	require.Len(t, booked, 1)
	assert.Equal(t, "-100.00", booked["2024-02-29"].StringFixed(2))
}

func TestAmountFor_MonthlyWithoutDayNeverBooks(t *testing.T) {
	booked := expandOne(t, expense(1, "Misc", "10", model.Monthly), date(2024, 1, 1), date(2024, 3, 31))
	assert.Empty(t, booked)
}

func TestAmountFor_AnnualAndOneTime(t *testing.T) {
	annual := expense(1, "Insurance", "600", model.Annual)
	annual.FrequencyDate = date(2024, 3, 15)
	booked := expandOne(t, annual, date(2024, 1, 1), date(2025, 12, 31))
	assert.Equal(t, []string{"2024-03-15"}, keys(booked), "annual items book on the exact date only")

	once := expense(2, "Laptop", "1200", model.OneTime)
	once.FrequencyDate = date(2024, 7, 4)
	booked = expandOne(t, once, date(2024, 1, 1), date(2024, 12, 31))
	assert.Equal(t, []string{"2024-07-04"}, keys(booked))
}

func TestAmountFor_Gate(t *testing.T) {
	day := GenerateCalendar(date(2024, 5, 10), date(2024, 5, 10), nil)[0]

	tests := []struct {
		name   string
		mutate func(*model.BudgetItem)
		booked bool
	}{
		{"active", func(*model.BudgetItem) {}, true},
		{"inactive", func(it *model.BudgetItem) { it.IsActive = false }, false},
		{"ended before", func(it *model.BudgetItem) { it.EndDate = date(2024, 5, 9) }, false},
		{"ends today", func(it *model.BudgetItem) { it.EndDate = date(2024, 5, 10) }, true},
		{"starts after", func(it *model.BudgetItem) { it.StartDate = date(2024, 5, 11) }, false},
		{"starts today", func(it *model.BudgetItem) { it.StartDate = date(2024, 5, 10) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := expense(1, "Coffee", "4", model.Daily)
			tt.mutate(&item)
			got, err := AmountFor(model.LedgerEntry{Day: day, Item: item})
			require.NoError(t, err)
			assert.Equal(t, tt.booked, !got.IsZero())
		})
	}
}

func TestAmountFor_SeasonalityOnlyWhenFlagged(t *testing.T) {
	day := GenerateCalendar(date(2024, 7, 1), date(2024, 7, 1), map[int]decimal.Decimal{7: dec("2")})[0]

	item := expense(1, "Electric", "50", model.Daily)
	got, err := AmountFor(model.LedgerEntry{Day: day, Item: item})
	require.NoError(t, err)
	assert.Equal(t, "-50", got.String())

	item.IsSeasonality = true
	got, err = AmountFor(model.LedgerEntry{Day: day, Item: item})
	require.NoError(t, err)
	assert.Equal(t, "-100", got.String())
}

func TestIncomeRoundTrip(t *testing.T) {
	item := income(1, "Allowance", "3", model.Daily)
	item.IsSeasonality = true
	item.StartDate = date(2024, 1, 10)

	seasonality := map[int]decimal.Decimal{1: dec("2"), 2: dec("0.5")}
	exp, err := Expand(GenerateCalendar(date(2024, 1, 1), date(2024, 2, 29), seasonality), []model.BudgetItem{item})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, e := range exp.Ledger {
		sum = sum.Add(e.BudgetItemAmount)
	}
	// 22 January days at 3*2 plus 29 February days at 3*0.5.
	want := dec("3").Mul(dec("22")).Mul(dec("2")).Add(dec("3").Mul(dec("29")).Mul(dec("0.5")))
	assert.True(t, want.Equal(sum), "want %s got %s", want, sum)
}

func keys(m map[string]decimal.Decimal) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
