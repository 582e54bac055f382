package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetbook/internal/model"
)

func TestExpand_OrderedByItemThenDate(t *testing.T) {
	dates := GenerateCalendar(date(2024, 1, 1), date(2024, 1, 3), nil)
	items := []model.BudgetItem{
		expense(2, "Water", "5", model.Daily),
		expense(1, "Power", "7", model.Daily),
	}

	exp, err := Expand(dates, items)
	require.NoError(t, err)
	require.Len(t, exp.Ledger, 6)

	var got [][2]int
	for _, e := range exp.Ledger {
		got = append(got, [2]int{e.Item.BudgetItemID, e.Day.DateID})
	}
	assert.Equal(t, [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}}, got)
}

func TestExpand_RepairsShortMonths(t *testing.T) {
	item := expense(1, "Rent", "1000", model.Monthly)
	item.FrequencyDay = intPtr(31)

	exp, err := Expand(GenerateCalendar(date(2024, 3, 1), date(2024, 4, 30), nil), []model.BudgetItem{item})
	require.NoError(t, err)

	for _, e := range exp.Ledger {
		require.NotNil(t, e.FrequencyDay)
		switch e.Day.MonthNumber {
		case 3:
			assert.Equal(t, 31, *e.FrequencyDay, "31-day month is unchanged")
		case 4:
			assert.Equal(t, 30, *e.FrequencyDay, "30-day month is repaired to its last day")
		}
	}
	assert.Equal(t, 31, *item.FrequencyDay, "the item itself is not modified")

	require.Len(t, exp.Notices, 1, "one notice per item and month")
	n := exp.Notices[0]
	assert.Equal(t, model.MonthKey{Month: 4, Year: 2024}, n.Month)
	assert.Equal(t, 31, n.From)
	assert.Equal(t, 30, n.To)
	assert.Equal(t, "Updated Rent for 04/2024 from 31 to 30", n.String())

	booked := FilterBooked(exp.Ledger)
	require.Len(t, booked, 2)
	assert.Equal(t, "2024-03-31", booked[0].Day.Key())
	assert.Equal(t, "2024-04-30", booked[1].Day.Key())
}

func TestExpand_RepairsAgainstCalendarRangeEnd(t *testing.T) {
	item := expense(1, "Rent", "100", model.Monthly)
	item.FrequencyDay = intPtr(20)

	exp, err := Expand(GenerateCalendar(date(2024, 3, 1), date(2024, 4, 15), nil), []model.BudgetItem{item})
	require.NoError(t, err)

	booked := FilterBooked(exp.Ledger)
	require.Len(t, booked, 2)
	assert.Equal(t, "2024-03-20", booked[0].Day.Key())
	assert.Equal(t, "2024-04-15", booked[1].Day.Key(), "the 20th is past the last April date, so the 15th books")
	assert.Equal(t, "-100", booked[1].BudgetItemAmount.String())
	assert.Equal(t, 15, *booked[1].FrequencyDay)

	require.Len(t, exp.Notices, 1)
	assert.Equal(t, "Updated Rent for 04/2024 from 20 to 15", exp.Notices[0].String())
}

func TestExpand_RepairsAgainstCalendarRangeStart(t *testing.T) {
	item := expense(1, "Gym", "40", model.Monthly)
	item.FrequencyDay = intPtr(5)

	exp, err := Expand(GenerateCalendar(date(2024, 1, 10), date(2024, 2, 29), nil), []model.BudgetItem{item})
	require.NoError(t, err)

	booked := FilterBooked(exp.Ledger)
	require.Len(t, booked, 2)
	assert.Equal(t, "2024-01-31", booked[0].Day.Key(), "the 5th is not in January's dates; the month's largest day is used")
	assert.Equal(t, "2024-02-05", booked[1].Day.Key())
	require.Len(t, exp.Notices, 1)
	assert.Equal(t, model.MonthKey{Month: 1, Year: 2024}, exp.Notices[0].Month)
}

func TestExpand_RepairsAgainstSparseDatesTable(t *testing.T) {
	item := expense(1, "Rent", "1000", model.Monthly)
	item.FrequencyDay = intPtr(30)

	all := GenerateCalendar(date(2024, 6, 1), date(2024, 6, 30), nil)
	dates := FilterRange(all[:28], date(2024, 6, 1), date(2024, 6, 30))

	exp, err := Expand(dates, []model.BudgetItem{item})
	require.NoError(t, err)
	booked := FilterBooked(exp.Ledger)
	require.Len(t, booked, 1)
	assert.Equal(t, "2024-06-28", booked[0].Day.Key())
}

func TestExpand_WeeklyDaysAreNotRepaired(t *testing.T) {
	item := expense(1, "Gym", "10", model.Weekly)
	item.FrequencyDay = intPtr(7)

	exp, err := Expand(GenerateCalendar(date(2024, 2, 1), date(2024, 2, 29), nil), []model.BudgetItem{item})
	require.NoError(t, err)
	assert.Empty(t, exp.Notices)
	for _, e := range exp.Ledger {
		assert.Equal(t, 7, *e.FrequencyDay)
	}
}

func TestExpand_MissingAnchorsAbort(t *testing.T) {
	dates := GenerateCalendar(date(2024, 1, 1), date(2024, 1, 31), nil)
	items := []model.BudgetItem{
		expense(1, "Rent", "1000", model.Daily),
		income(2, "Salary", "2500", model.BiWeekly),
		expense(3, "Insurance", "600", model.Annual),
	}

	exp, err := Expand(dates, items)
	require.Error(t, err)
	assert.Nil(t, exp, "no ledger is produced")
	assert.True(t, errors.Is(err, model.ErrConfiguration))

	var ce *model.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.ItemID)
	assert.Contains(t, err.Error(), "Salary")
	assert.Contains(t, err.Error(), "Insurance", "every offending item is reported")
}

func TestExpand_InactiveItemsAreNotValidated(t *testing.T) {
	item := income(1, "Old Job", "2500", model.BiWeekly)
	item.IsActive = false

	exp, err := Expand(GenerateCalendar(date(2024, 1, 1), date(2024, 1, 31), nil), []model.BudgetItem{item})
	require.NoError(t, err)
	assert.Empty(t, FilterBooked(exp.Ledger))
}

func TestExpand_SkipsValidationForItemsOutsideRange(t *testing.T) {
	ended := income(1, "Old Job", "2500", model.BiWeekly)
	ended.EndDate = date(2023, 12, 31)
	future := expense(2, "Insurance", "600", model.Annual)
	future.StartDate = date(2025, 1, 1)

	exp, err := Expand(GenerateCalendar(date(2024, 1, 1), date(2024, 1, 31), nil), []model.BudgetItem{ended, future})
	require.NoError(t, err, "no row of either item passes the date gate")
	assert.Empty(t, FilterBooked(exp.Ledger))

	ended.EndDate = date(2024, 1, 1)
	_, err = Expand(GenerateCalendar(date(2024, 1, 1), date(2024, 1, 31), nil), []model.BudgetItem{ended})
	require.ErrorIs(t, err, model.ErrConfiguration, "an item active on the first date is still checked")
}

func TestLoad_GeneratesCalendarForItemsOnlyInput(t *testing.T) {
	dir := t.TempDir()
	writeItems(t, dir, "Y,N,,Rent,,,Home,Expense,1000,Monthly,1,,,,\n")

	res, err := Load(LoadOptions{InputsPath: dir, From: date(2024, 1, 1), To: date(2024, 3, 31)})
	require.NoError(t, err)
	assert.True(t, res.GeneratedCalendar)
	assert.Len(t, res.Dates, 91)
	assert.Equal(t, 1, res.Dates[0].DateID)
	require.Len(t, res.Items, 1)
}

func TestLoad_RejectsInvertedRange(t *testing.T) {
	_, err := Load(LoadOptions{InputsPath: t.TempDir(), From: date(2024, 3, 1), To: date(2024, 1, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before it starts")
}

func TestBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeItems(t, dir,
		"Y,N,,Salary,,,Income,Income,2000,Bi-Weekly,,,2024-01-05,,\n"+
			"Y,N,,Rent,,,Home,Expense,1000,Monthly,1,,,,\n")

	run, err := Build(LoadOptions{InputsPath: dir, From: date(2024, 1, 1), To: date(2024, 2, 29)}, "Income")
	require.NoError(t, err)

	require.Len(t, run.Report.Monthly, 2)
	jan := run.Report.Monthly[0]
	assert.Equal(t, model.MonthKey{Month: 1, Year: 2024}, jan.Month)
	// Paydays on Jan 5 and Jan 19 (the 14-day cadence also lands on Feb 2 and 16).
	assert.Equal(t, "4000", jan.Income.String())
	assert.Equal(t, "-1000", jan.Expenses.String())
	assert.Equal(t, "3000", jan.Remaining.String())
	require.NotNil(t, jan.RemainingPct)
	assert.InDelta(t, 0.75, *jan.RemainingPct, 1e-9)
}

func TestLoad_FiltersProvidedDates(t *testing.T) {
	dir := t.TempDir()
	writeItems(t, dir, "Y,N,,Rent,,,Home,Expense,1000,Monthly,1,,,,\n")
	writeDates(t, dir,
		"2024-01-02,3,2,1,2024,1,01/2024,2024,1\n"+
			"2023-12-31,1,31,53,2023,12,12/2023,2023,1\n"+
			"2024-01-01,2,1,1,2024,1,01/2024,2024,1\n")

	res, err := Load(LoadOptions{InputsPath: dir, From: date(2024, 1, 1), To: date(2024, 1, 31)})
	require.NoError(t, err)
	assert.False(t, res.GeneratedCalendar)
	require.Len(t, res.Dates, 2)
	assert.Equal(t, "2024-01-01", res.Dates[0].Key())
	assert.Equal(t, 1, res.Dates[0].DateID)
	assert.Equal(t, 2, res.Dates[1].DateID)
	assert.Equal(t, time.Tuesday, res.Dates[1].Date.Weekday())
}
