package pipeline

import (
	"sort"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// Expansion is the output of Expand.
type Expansion struct {
	Ledger  []model.LedgerEntry
	Notices []RepairNotice
}

// Expand builds the ledger: every date crossed with every item, ordered by
// item then date, with short-month anchors repaired and amounts evaluated.
// Any configuration error aborts the whole expansion.
func Expand(dates []model.CalendarDate, items []model.BudgetItem) (*Expansion, error) {
	if err := ValidateItems(items, dates); err != nil {
		return nil, err
	}

	ledger := crossJoin(dates, items)
	sort.SliceStable(ledger, func(i, j int) bool {
		if ledger[i].Item.BudgetItemID != ledger[j].Item.BudgetItemID {
			return ledger[i].Item.BudgetItemID < ledger[j].Item.BudgetItemID
		}
		return ledger[i].Day.DateID < ledger[j].Day.DateID
	})

	notices := repairFrequencyDays(ledger, newMonthDays(dates))

	for i := range ledger {
		amount, err := AmountFor(ledger[i])
		if err != nil {
			return nil, err
		}
		ledger[i].BudgetItemAmount = amount
	}

	return &Expansion{Ledger: ledger, Notices: notices}, nil
}

func crossJoin(dates []model.CalendarDate, items []model.BudgetItem) []model.LedgerEntry {
	ledger := make([]model.LedgerEntry, 0, len(dates)*len(items))
	for _, d := range dates {
		for _, it := range items {
			e := model.LedgerEntry{Day: d, Item: it}
			if it.FrequencyDay != nil {
				day := *it.FrequencyDay
				e.FrequencyDay = &day
			}
			ledger = append(ledger, e)
		}
	}
	return ledger
}

// monthDays records which day numbers the calendar holds in each month.
type monthDays struct {
	present map[model.MonthKey]map[int]struct{}
	last    map[model.MonthKey]int
}

func newMonthDays(dates []model.CalendarDate) monthDays {
	md := monthDays{
		present: make(map[model.MonthKey]map[int]struct{}),
		last:    make(map[model.MonthKey]int),
	}
	for _, d := range dates {
		m := d.Month()
		if md.present[m] == nil {
			md.present[m] = make(map[int]struct{})
		}
		md.present[m][d.DayNumber] = struct{}{}
		if d.DayNumber > md.last[m] {
			md.last[m] = d.DayNumber
		}
	}
	return md
}

func (md monthDays) has(m model.MonthKey, day int) bool {
	_, ok := md.present[m][day]
	return ok
}

// repairFrequencyDays moves day-of-month anchors that are not in the
// calendar for a row's month (the 31st in April, or the 20th when the range
// ends on the 15th) to the largest day the calendar holds for that month.
// Repairs are per row; notices are reported once per item and month.
func repairFrequencyDays(ledger []model.LedgerEntry, days monthDays) []RepairNotice {
	type noticeKey struct {
		item  int
		month model.MonthKey
	}
	seen := make(map[noticeKey]struct{})

	var notices []RepairNotice
	for i := range ledger {
		e := &ledger[i]
		if e.FrequencyDay == nil || !e.Item.Frequency.UsesDayOfMonth() {
			continue
		}
		month := e.Day.Month()
		if days.has(month, *e.FrequencyDay) {
			continue
		}

		from := *e.FrequencyDay
		last := days.last[month]
		e.FrequencyDay = &last

		key := noticeKey{item: e.Item.BudgetItemID, month: month}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		notices = append(notices, RepairNotice{
			ItemID:   e.Item.BudgetItemID,
			ItemName: e.Item.ItemName,
			Month:    key.month,
			From:     from,
			To:       last,
		})
	}
	return notices
}
