package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SeasonalityConfig maps months to the multiplier applied to seasonal items
// on generated calendars. Keys are month numbers ("7") or English month
// names and abbreviations ("jul", "July").
type SeasonalityConfig struct {
	Months map[string]float64 `toml:"months,omitempty"`
}

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ParseMonth resolves a month key to 1-12.
func ParseMonth(key string) (int, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if n, err := strconv.Atoi(k); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range 1-12", n)
		}
		return n, nil
	}
	if len(k) >= 3 {
		if n, ok := monthNames[k[:3]]; ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", key)
}

// Multipliers returns the configured multipliers keyed by month number.
// Months not listed are absent and default to 1.0 downstream.
func (s SeasonalityConfig) Multipliers() (map[int]decimal.Decimal, error) {
	out := make(map[int]decimal.Decimal, len(s.Months))
	for key, v := range s.Months {
		m, err := ParseMonth(key)
		if err != nil {
			return nil, fmt.Errorf("seasonality: %w", err)
		}
		if v < 0 {
			return nil, fmt.Errorf("seasonality: multiplier for %s must not be negative", key)
		}
		if _, dup := out[m]; dup {
			return nil, fmt.Errorf("seasonality: month %d listed twice", m)
		}
		out[m] = decimal.NewFromFloat(v)
	}
	return out, nil
}
