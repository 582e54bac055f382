package config

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultRange covers the current and the following calendar year.
func DefaultRange(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(now.Year()+1, time.December, 31, 0, 0, 0, 0, time.UTC)
	return from, to
}

// Range resolves the configured budget range, filling unset bounds from
// DefaultRange.
func (b BudgetConfig) Range(now time.Time) (from, to time.Time, err error) {
	from, to = DefaultRange(now)
	if from, err = parseBound("min_date", b.MinDate, from); err != nil {
		return from, to, err
	}
	if to, err = parseBound("max_date", b.MaxDate, to); err != nil {
		return from, to, err
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("budget max_date %s is before min_date %s", to.Format(dateLayout), from.Format(dateLayout))
	}
	return from, to, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func parseBound(name, value string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return def, fmt.Errorf("budget %s: expected YYYY-MM-DD, got %q", name, value)
	}
	return t, nil
}
