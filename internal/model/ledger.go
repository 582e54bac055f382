package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one (date, item) pair of the expanded ledger.
type LedgerEntry struct {
	Day  CalendarDate
	Item BudgetItem

	// FrequencyDay is the row-level anchor. It starts as a copy of the item's
	// frequency day and may be repaired for short months.
	FrequencyDay *int

	BudgetItemAmount decimal.Decimal
}

// ExportColumns is the fixed column order of ledger exports.
var ExportColumns = []string{
	"date_id",
	"date",
	"week_number",
	"month_number",
	"year",
	"is_active",
	"company_name",
	"item_name",
	"category_name",
	"category_group",
	"display_group",
	"item_type",
	"item_amount",
	"frequency_type",
	"frequency_day",
	"frequency_date",
	"start_date",
	"end_date",
	"is_seasonality",
	"seasonality_multiplier",
	"budget_item_amount",
}

// ExportColumnIndex returns the 1-based position of name in ExportColumns,
// or 0 when absent.
func ExportColumnIndex(name string) int {
	for i, c := range ExportColumns {
		if c == name {
			return i + 1
		}
	}
	return 0
}

// ExportValues returns the entry's fields in ExportColumns order. Dates are
// time.Time (nil when unset), amounts float64, flags bool. Suitable for
// spreadsheet cells and database parameters.
func (e LedgerEntry) ExportValues() []any {
	var freqDay any
	if e.FrequencyDay != nil {
		freqDay = *e.FrequencyDay
	}
	return []any{
		e.Day.DateID,
		e.Day.Date,
		e.Day.WeekNumber,
		e.Day.MonthNumber,
		e.Day.Year,
		e.Item.IsActive,
		e.Item.CompanyName,
		e.Item.ItemName,
		e.Item.CategoryName,
		e.Item.CategoryGroup,
		e.Item.DisplayGroup,
		e.Item.ItemType,
		e.Item.ItemAmount.InexactFloat64(),
		e.Item.Frequency.String(),
		freqDay,
		optionalDate(e.Item.FrequencyDate),
		optionalDate(e.Item.StartDate),
		optionalDate(e.Item.EndDate),
		e.Item.IsSeasonality,
		e.Day.SeasonalityMultiplier.InexactFloat64(),
		e.BudgetItemAmount.InexactFloat64(),
	}
}

// ExportStrings returns the entry's fields in ExportColumns order as text.
func (e LedgerEntry) ExportStrings() []string {
	freqDay := ""
	if e.FrequencyDay != nil {
		freqDay = strconv.Itoa(*e.FrequencyDay)
	}
	return []string{
		strconv.Itoa(e.Day.DateID),
		e.Day.Key(),
		strconv.Itoa(e.Day.WeekNumber),
		strconv.Itoa(e.Day.MonthNumber),
		strconv.Itoa(e.Day.Year),
		strconv.FormatBool(e.Item.IsActive),
		e.Item.CompanyName,
		e.Item.ItemName,
		e.Item.CategoryName,
		e.Item.CategoryGroup,
		e.Item.DisplayGroup,
		e.Item.ItemType,
		e.Item.ItemAmount.StringFixed(2),
		e.Item.Frequency.String(),
		freqDay,
		formatOptionalDate(e.Item.FrequencyDate),
		formatOptionalDate(e.Item.StartDate),
		formatOptionalDate(e.Item.EndDate),
		strconv.FormatBool(e.Item.IsSeasonality),
		e.Day.SeasonalityMultiplier.String(),
		e.BudgetItemAmount.StringFixed(2),
	}
}

func optionalDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
