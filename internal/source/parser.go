package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// FlagYes is the only cell value read as true in flag columns.
const FlagYes = "Y"

var dateLayouts = []string{
	model.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
}

// ParseDates converts raw date rows into calendar dates. DateID follows row
// order; it is reassigned once the range is filtered.
func ParseDates(t *Table) ([]model.CalendarDate, error) {
	p := cellParser{table: t.Name}
	seen := make(map[string]int, len(t.Records))

	dates := make([]model.CalendarDate, 0, len(t.Records))
	for i, rec := range t.Records {
		p.row = rec.Row
		d := model.CalendarDate{
			DateID:      i + 1,
			Date:        p.requiredDate(rec, 0),
			DayOfWeek:   p.requiredInt(rec, 1),
			DayNumber:   p.requiredInt(rec, 2),
			WeekNumber:  p.requiredInt(rec, 3),
			WeekYear:    p.requiredInt(rec, 4),
			MonthNumber: p.requiredInt(rec, 5),
			MonthYear:   rec.Cell(6),
			Year:        p.requiredInt(rec, 7),
		}
		d.SeasonalityMultiplier = p.optionalDecimal(rec, 8, decimal.NewFromInt(1))
		if p.err != nil {
			return nil, p.err
		}

		if d.DayOfWeek < 1 || d.DayOfWeek > 7 {
			return nil, p.fail(DateColumns[1], fmt.Sprintf("day of week %d out of range 1-7", d.DayOfWeek))
		}
		if prev, dup := seen[d.Key()]; dup {
			return nil, p.fail(DateColumns[0], fmt.Sprintf("date %s already listed on row %d", d.Key(), prev))
		}
		seen[d.Key()] = rec.Row
		dates = append(dates, d)
	}
	return dates, nil
}

// ParseItems converts raw budget item rows into items. BudgetItemID follows
// row order starting at 1.
func ParseItems(t *Table) ([]model.BudgetItem, error) {
	p := cellParser{table: t.Name}

	items := make([]model.BudgetItem, 0, len(t.Records))
	for i, rec := range t.Records {
		p.row = rec.Row
		it := model.BudgetItem{
			BudgetItemID:  i + 1,
			IsActive:      ParseFlag(rec.Cell(0)),
			IsSeasonality: ParseFlag(rec.Cell(1)),
			CompanyName:   rec.Cell(2),
			ItemName:      p.requiredString(rec, 3),
			CategoryName:  rec.Cell(4),
			CategoryGroup: rec.Cell(5),
			DisplayGroup:  p.requiredString(rec, 6),
			ItemType:      p.requiredString(rec, 7),
			ItemAmount:    p.requiredDecimal(rec, 8),
			FrequencyDay:  p.optionalInt(rec, 10),
			FrequencyDate: p.optionalDate(rec, 11),
			StartDate:     p.optionalDate(rec, 12),
			EndDate:       p.optionalDate(rec, 13),
			Notes:         rec.Cell(14),
		}
		freqLabel := p.requiredString(rec, 9)
		if p.err != nil {
			return nil, p.err
		}

		if it.ItemAmount.IsNegative() {
			return nil, p.fail(ItemColumns[8], "amount must not be negative")
		}

		freq, err := model.ParseFrequencyType(freqLabel)
		if err != nil {
			return nil, &model.ConfigurationError{ItemID: it.BudgetItemID, ItemName: it.ItemName, Err: err}
		}
		it.Frequency = freq

		if it.FrequencyDay != nil {
			if err := checkFrequencyDay(freq, *it.FrequencyDay); err != "" {
				return nil, p.fail(ItemColumns[10], err)
			}
		}
		items = append(items, it)
	}
	return items, nil
}

func checkFrequencyDay(freq model.FrequencyType, day int) string {
	switch freq {
	case model.Weekly:
		if day < 1 || day > 7 {
			return fmt.Sprintf("weekly frequency day %d out of range 1-7", day)
		}
	case model.Monthly:
		if day < 1 || day > 31 {
			return fmt.Sprintf("monthly frequency day %d out of range 1-31", day)
		}
	}
	return ""
}

// ParseFlag normalizes a Y/N cell: "Y" is true, anything else false.
func ParseFlag(s string) bool {
	return strings.TrimSpace(s) == FlagYes
}

// ParseDate reads an Excel serial number or a date string. The result is
// midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return model.NormalizeDate(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// cellParser accumulates the first error of a row so field extraction reads
// as a flat struct literal.
type cellParser struct {
	table string
	row   int
	err   error
}

func (p *cellParser) fail(column, reason string) error {
	return &model.InputShapeError{Table: p.table, Row: p.row, Column: column, Reason: reason}
}

func (p *cellParser) record(column, reason string) {
	if p.err == nil {
		p.err = p.fail(column, reason)
	}
}

func (p *cellParser) columnName(i int) string {
	if p.table == DatesTable {
		return DateColumns[i]
	}
	return ItemColumns[i]
}

func (p *cellParser) requiredString(rec Record, i int) string {
	v := rec.Cell(i)
	if v == "" {
		p.record(p.columnName(i), "value required")
	}
	return v
}

func (p *cellParser) requiredInt(rec Record, i int) int {
	v := rec.Cell(i)
	if v == "" {
		p.record(p.columnName(i), "value required")
		return 0
	}
	n, err := parseWhole(v)
	if err != nil {
		p.record(p.columnName(i), err.Error())
	}
	return n
}

func (p *cellParser) optionalInt(rec Record, i int) *int {
	v := rec.Cell(i)
	if v == "" {
		return nil
	}
	n, err := parseWhole(v)
	if err != nil {
		p.record(p.columnName(i), err.Error())
		return nil
	}
	return &n
}

func (p *cellParser) requiredDecimal(rec Record, i int) decimal.Decimal {
	v := rec.Cell(i)
	if v == "" {
		p.record(p.columnName(i), "value required")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		p.record(p.columnName(i), fmt.Sprintf("invalid number %q", v))
	}
	return d
}

func (p *cellParser) optionalDecimal(rec Record, i int, def decimal.Decimal) decimal.Decimal {
	if rec.Cell(i) == "" {
		return def
	}
	return p.requiredDecimal(rec, i)
}

func (p *cellParser) requiredDate(rec Record, i int) time.Time {
	v := rec.Cell(i)
	if v == "" {
		p.record(p.columnName(i), "value required")
		return time.Time{}
	}
	return p.optionalDate(rec, i)
}

func (p *cellParser) optionalDate(rec Record, i int) time.Time {
	v := rec.Cell(i)
	if v == "" {
		return time.Time{}
	}
	t, err := ParseDate(v)
	if err != nil {
		p.record(p.columnName(i), err.Error())
	}
	return t
}

// parseWhole accepts "31" and spreadsheet renderings such as "31.0".
func parseWhole(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid whole number %q", s)
	}
	return int(f), nil
}
