package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthKey identifies one calendar month.
type MonthKey struct {
	Month int
	Year  int
}

// Label returns the month as MM/YYYY.
func (m MonthKey) Label() string {
	return fmt.Sprintf("%02d/%d", m.Month, m.Year)
}

// ItemTotal holds the summed amounts of one item within its display group.
type ItemTotal struct {
	ItemName     string
	DisplayGroup string
	Amount       decimal.Decimal // signed sum
	AbsAmount    decimal.Decimal // sum of absolute values
}

// GroupTotal holds the summed absolute amounts of one display group.
type GroupTotal struct {
	DisplayGroup string
	AbsAmount    decimal.Decimal
}

// MonthTotals holds the bottom-line figures for one month.
type MonthTotals struct {
	Month        MonthKey
	Income       decimal.Decimal
	Expenses     decimal.Decimal // signed, normally negative
	Remaining    decimal.Decimal
	RemainingPct *float64 // nil when the month has no income
}
