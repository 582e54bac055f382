package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeType is the item type that books positive amounts. Any other item
// type is treated as an expense.
const IncomeType = "Income"

// BudgetItem is one recurring budget definition.
type BudgetItem struct {
	BudgetItemID  int
	IsActive      bool
	IsSeasonality bool
	CompanyName   string
	ItemName      string
	CategoryName  string
	CategoryGroup string
	DisplayGroup  string
	ItemType      string
	ItemAmount    decimal.Decimal
	Frequency     FrequencyType
	FrequencyDay  *int      // day of week for Weekly, day of month for Monthly
	FrequencyDate time.Time // exact date for Annual and One-Time; zero when unset
	StartDate     time.Time // zero when unset
	EndDate       time.Time // zero when unset
	Notes         string
}

// IsIncome reports whether the item books positive amounts.
func (b BudgetItem) IsIncome() bool {
	return b.ItemType == IncomeType
}

// HasFrequencyDay reports whether a frequency day is configured.
func (b BudgetItem) HasFrequencyDay() bool {
	return b.FrequencyDay != nil
}
