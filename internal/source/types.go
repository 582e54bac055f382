// Package source reads the calendar and budget item tables from an input
// workbook or a directory of CSV files.
package source

import (
	"strings"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// Table names used in error messages.
const (
	DatesTable = "dates"
	ItemsTable = "items"
)

// DateColumns is the column order of the dates table.
var DateColumns = []string{
	"date",
	"day_of_week",
	"day_number",
	"week_number",
	"week_year",
	"month_number",
	"month_year",
	"year",
	"seasonality_multiplier",
}

// ItemColumns is the column order of the budget items table.
var ItemColumns = []string{
	"is_active",
	"is_seasonality",
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
	"notes",
}

// optionalColumns may be absent from CSV headers.
var optionalColumns = map[string]bool{
	"seasonality_multiplier": true,
	"notes":                  true,
	"company_name":           true,
	"category_name":          true,
	"category_group":         true,
}

// Record is one data row, with cells in canonical column order.
type Record struct {
	Row   int // 1-based row number in the source file
	Cells []string
}

// Cell returns the trimmed value of column i, or "" when the row is short.
func (r Record) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i])
}

func (r Record) blank() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Table is a raw input table.
type Table struct {
	Name    string
	Columns []string
	Records []Record
}

// Options selects the sheets to read from a workbook.
type Options struct {
	DatesSheet string
	ItemsSheet string
}

// DefaultOptions returns the sheet names of the standard inputs workbook.
func DefaultOptions() Options {
	return Options{DatesSheet: "Dates", ItemsSheet: "Budget Items"}
}

// Tables holds the parsed input tables. HasDates is false when the input
// carries no dates table and the calendar must be generated.
type Tables struct {
	Dates    []model.CalendarDate
	Items    []model.BudgetItem
	HasDates bool
}
