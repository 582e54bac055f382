package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/source"
)

// LoadOptions controls where inputs come from and which dates are kept.
type LoadOptions struct {
	InputsPath string
	Sheets     source.Options
	From       time.Time
	To         time.Time

	// GenerateCalendar ignores any dates table and builds the calendar from
	// From/To instead.
	GenerateCalendar bool
	Seasonality      map[int]decimal.Decimal
}

// LoadResult holds the validated input tables, ready for expansion.
type LoadResult struct {
	Dates             []model.CalendarDate
	Items             []model.BudgetItem
	GeneratedCalendar bool
}

// Load reads both input tables, generating the calendar when the input has
// none, and filters the dates to the requested range.
func Load(opts LoadOptions) (*LoadResult, error) {
	if opts.From.IsZero() || opts.To.IsZero() {
		return nil, errors.New("a date range is required")
	}
	if opts.To.Before(opts.From) {
		return nil, fmt.Errorf("date range ends (%s) before it starts (%s)",
			opts.To.Format(model.DateLayout), opts.From.Format(model.DateLayout))
	}

	tables, err := source.Read(opts.InputsPath, opts.Sheets)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.InputsPath, err)
	}

	result := &LoadResult{Items: tables.Items}
	if opts.GenerateCalendar || !tables.HasDates {
		result.Dates = GenerateCalendar(opts.From, opts.To, opts.Seasonality)
		result.GeneratedCalendar = true
		return result, nil
	}

	result.Dates = FilterRange(tables.Dates, opts.From, opts.To)
	return result, nil
}

// Run is the whole computation from loaded inputs to a planned report.
type Run struct {
	Input     *LoadResult
	Expansion *Expansion
	Report    Report
}

// Build loads the inputs, expands the ledger, and plans the report.
func Build(opts LoadOptions, incomeGroup string) (*Run, error) {
	in, err := Load(opts)
	if err != nil {
		return nil, err
	}

	exp, err := Expand(in.Dates, in.Items)
	if err != nil {
		return nil, err
	}

	rep := Plan(exp.Ledger, PlanOptions{From: opts.From, To: opts.To, IncomeGroup: incomeGroup})
	return &Run{Input: in, Expansion: exp, Report: rep}, nil
}
