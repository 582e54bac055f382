// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// FormatMoney formats an amount with two decimals and comma separators.
// e.g., -1234.5 -> "-1,234.50"
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return d.StringFixed(2)
	}
	out := FormatNumber(n) + "." + frac
	if d.IsNegative() && s != "0.00" {
		return "-" + out
	}
	return out
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatOptionalPercent is FormatPercent with "-" for nil.
func FormatOptionalPercent(f *float64) string {
	if f == nil {
		return "-"
	}
	return FormatPercent(*f)
}

// FormatMonth formats a month as "Jan 2024".
func FormatMonth(m model.MonthKey) string {
	if m.Month < 1 || m.Month > 12 {
		return m.Label()
	}
	return fmt.Sprintf("%s %d", monthAbbrev[m.Month-1], m.Year)
}

var monthAbbrev = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDayOfWeek returns a 3-letter day abbreviation from a calendar day of
// week, where Sunday is 1.
func FormatDayOfWeek(dayOfWeek int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if dayOfWeek >= 1 && dayOfWeek <= 7 {
		return days[dayOfWeek-1]
	}
	return "???"
}

// FormatFrequencyDay formats an optional anchor day.
func FormatFrequencyDay(day *int) string {
	if day == nil {
		return ""
	}
	return strconv.Itoa(*day)
}
