package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/budgetbook/internal/model"
)

const (
	errMissingBiWeeklyAnchor = "bi-weekly items need a start_date to determine alternating weeks"
	errMissingFrequencyDate  = "%s items need a frequency_date"
)

func configError(item model.BudgetItem, reason string) error {
	return &model.ConfigurationError{
		ItemID:   item.BudgetItemID,
		ItemName: item.ItemName,
		Reason:   reason,
	}
}

// ValidateItems checks the anchors every active item needs before expansion.
// Items whose start/end bounds exclude every date are skipped, since none of
// their rows is ever evaluated. All offending items are reported together.
func ValidateItems(items []model.BudgetItem, dates []model.CalendarDate) error {
	first, last, ok := dateBounds(dates)
	if !ok {
		return nil
	}

	var errs []error
	for _, it := range items {
		if !it.IsActive {
			continue
		}
		if !it.EndDate.IsZero() && it.EndDate.Before(first) {
			continue
		}
		if !it.StartDate.IsZero() && it.StartDate.After(last) {
			continue
		}
		switch it.Frequency {
		case model.Daily, model.Weekly, model.Monthly:
		case model.BiWeekly:
			if it.StartDate.IsZero() {
				errs = append(errs, configError(it, errMissingBiWeeklyAnchor))
			}
		case model.Annual, model.OneTime:
			if it.FrequencyDate.IsZero() {
				errs = append(errs, configError(it, fmt.Sprintf(errMissingFrequencyDate, it.Frequency)))
			}
		default:
			errs = append(errs, configError(it, fmt.Sprintf("unsupported frequency type %q", it.Frequency)))
		}
	}
	return errors.Join(errs...)
}

func dateBounds(dates []model.CalendarDate) (first, last time.Time, ok bool) {
	for i, d := range dates {
		if i == 0 || d.Date.Before(first) {
			first = d.Date
		}
		if i == 0 || d.Date.After(last) {
			last = d.Date
		}
	}
	return first, last, len(dates) > 0
}

// RepairNotice records a day-of-month anchor that fell outside its month and
// was moved to the month's last day.
type RepairNotice struct {
	ItemID   int
	ItemName string
	Month    model.MonthKey
	From     int
	To       int
}

func (n RepairNotice) String() string {
	return fmt.Sprintf("Updated %s for %s from %d to %d", n.ItemName, n.Month.Label(), n.From, n.To)
}
