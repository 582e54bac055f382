// Package model defines domain types for budget calendars, items, and the ledger.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO date format used for keys, exports, and config values.
const DateLayout = "2006-01-02"

// CalendarDate is one day of the budget calendar.
type CalendarDate struct {
	DateID                int
	Date                  time.Time
	DayOfWeek             int // 1-7, numbering taken from the input table
	DayNumber             int
	WeekNumber            int
	WeekYear              int
	MonthNumber           int
	MonthYear             string
	Year                  int
	SeasonalityMultiplier decimal.Decimal
}

// Key returns the date formatted as YYYY-MM-DD.
func (c CalendarDate) Key() string {
	return c.Date.Format(DateLayout)
}

// Month returns the calendar month this date belongs to.
func (c CalendarDate) Month() MonthKey {
	return MonthKey{Month: c.MonthNumber, Year: c.Year}
}

// SameDay reports whether a and b fall on the same calendar day, ignoring
// time of day and location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
