package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
)

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

// AmountFor returns the signed amount booked for the entry's item on the
// entry's date, or zero when the item does not apply that day.
func AmountFor(e model.LedgerEntry) (decimal.Decimal, error) {
	if !passesGate(e) {
		return decimal.Zero, nil
	}

	books, err := booksOn(e)
	if err != nil {
		return decimal.Zero, err
	}
	if !books {
		return decimal.Zero, nil
	}
	return e.Item.ItemAmount.Mul(multiplier(e)), nil
}

// passesGate applies the active flag and the start/end bounds.
func passesGate(e model.LedgerEntry) bool {
	if !e.Item.IsActive {
		return false
	}
	if !e.Item.EndDate.IsZero() && e.Day.Date.After(e.Item.EndDate) {
		return false
	}
	if !e.Item.StartDate.IsZero() && e.Day.Date.Before(e.Item.StartDate) {
		return false
	}
	return true
}

func multiplier(e model.LedgerEntry) decimal.Decimal {
	sign := minusOne
	if e.Item.IsIncome() {
		sign = one
	}
	if e.Item.IsSeasonality {
		return sign.Mul(e.Day.SeasonalityMultiplier)
	}
	return sign
}

func booksOn(e model.LedgerEntry) (bool, error) {
	switch e.Item.Frequency {
	case model.Daily:
		return true, nil
	case model.Weekly:
		return booksWeekly(e), nil
	case model.BiWeekly:
		return booksBiWeekly(e)
	case model.Monthly:
		return booksMonthly(e), nil
	case model.Annual, model.OneTime:
		return booksOnDate(e)
	default:
		return false, configError(e.Item, fmt.Sprintf("unsupported frequency type %q", e.Item.Frequency))
	}
}

func booksWeekly(e model.LedgerEntry) bool {
	if e.FrequencyDay == nil {
		return e.Day.DayOfWeek == 1
	}
	return e.Day.DayOfWeek == *e.FrequencyDay
}

// booksBiWeekly books on the anchor's weekday in weeks of the same parity as
// the anchor's week. Parity is counted from the anchor itself so the cadence
// stays at 14 days across year boundaries.
func booksBiWeekly(e model.LedgerEntry) (bool, error) {
	if e.Item.StartDate.IsZero() {
		return false, configError(e.Item, errMissingBiWeeklyAnchor)
	}
	days := model.DaysBetween(e.Item.StartDate, e.Day.Date)
	sameWeekday := days%7 == 0
	evenWeeks := (days/7)%2 == 0
	return sameWeekday && evenWeeks, nil
}

// booksMonthly books when the day of month equals the row's anchor. An item
// without a frequency day never books.
func booksMonthly(e model.LedgerEntry) bool {
	if e.FrequencyDay == nil {
		return false
	}
	return e.Day.DayNumber == *e.FrequencyDay
}

// booksOnDate books only on the exact frequency date.
func booksOnDate(e model.LedgerEntry) (bool, error) {
	if e.Item.FrequencyDate.IsZero() {
		return false, configError(e.Item, fmt.Sprintf(errMissingFrequencyDate, e.Item.Frequency))
	}
	return model.SameDay(e.Day.Date, e.Item.FrequencyDate), nil
}
