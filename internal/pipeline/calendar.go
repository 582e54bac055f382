package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// GenerateCalendar builds one CalendarDate per day in [from, to] using the
// spreadsheet conventions of the input workbook: WEEKDAY with Sunday = 1 and
// WEEKNUM with Sunday-start weeks where week 1 contains January 1st.
// seasonality maps month number to multiplier; missing months get 1.0.
func GenerateCalendar(from, to time.Time, seasonality map[int]decimal.Decimal) []model.CalendarDate {
	from, to = model.NormalizeDate(from), model.NormalizeDate(to)
	if to.Before(from) {
		return nil
	}

	var dates []model.CalendarDate
	id := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		id++
		mult, ok := seasonality[int(day.Month())]
		if !ok {
			mult = decimal.NewFromInt(1)
		}
		dates = append(dates, model.CalendarDate{
			DateID:                id,
			Date:                  day,
			DayOfWeek:             int(day.Weekday()) + 1,
			DayNumber:             day.Day(),
			WeekNumber:            weekNumber(day),
			WeekYear:              day.Year(),
			MonthNumber:           int(day.Month()),
			MonthYear:             fmt.Sprintf("%02d/%d", int(day.Month()), day.Year()),
			Year:                  day.Year(),
			SeasonalityMultiplier: mult,
		})
	}
	return dates
}

// weekNumber mirrors WEEKNUM(date, 1).
func weekNumber(day time.Time) int {
	jan1 := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (day.YearDay()-1+int(jan1.Weekday()))/7 + 1
}

// FilterRange keeps the dates within [from, to], orders them by date, and
// renumbers DateID from 1.
func FilterRange(dates []model.CalendarDate, from, to time.Time) []model.CalendarDate {
	from, to = model.NormalizeDate(from), model.NormalizeDate(to)

	out := make([]model.CalendarDate, 0, len(dates))
	for _, d := range dates {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	for i := range out {
		out[i].DateID = i + 1
	}
	return out
}
