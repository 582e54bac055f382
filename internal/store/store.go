// Package store exports budget runs to a SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is an export database holding one or more budget runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the export database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run describes one budget computation.
type Run struct {
	ID                string
	CreatedAt         time.Time
	From              time.Time
	To                time.Time
	InputsPath        string
	ItemCount         int
	DateCount         int
	GeneratedCalendar bool
}

// SaveRun stores a run with its ledger and repair notices in one
// transaction.
func (s *Store) SaveRun(run Run, ledger []model.LedgerEntry, notices []pipeline.RepairNotice) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, created_at, min_date, max_date, inputs_path, item_count, date_count, generated_calendar)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339),
		run.From.Format(model.DateLayout), run.To.Format(model.DateLayout),
		run.InputsPath, run.ItemCount, run.DateCount, boolInt(run.GeneratedCalendar),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO ledger
		(run_id, date_id, date, week_number, month_number, year, budget_item_id,
		 is_active, company_name, item_name, category_name, category_group, display_group,
		 item_type, item_amount, frequency_type, frequency_day, frequency_date,
		 start_date, end_date, is_seasonality, seasonality_multiplier, budget_item_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range ledger {
		var freqDay any
		if e.FrequencyDay != nil {
			freqDay = *e.FrequencyDay
		}
		_, err = stmt.Exec(
			run.ID, e.Day.DateID, e.Day.Key(), e.Day.WeekNumber, e.Day.MonthNumber, e.Day.Year,
			e.Item.BudgetItemID, boolInt(e.Item.IsActive), e.Item.CompanyName, e.Item.ItemName,
			e.Item.CategoryName, e.Item.CategoryGroup, e.Item.DisplayGroup, e.Item.ItemType,
			e.Item.ItemAmount.String(), e.Item.Frequency.String(), freqDay,
			nullDate(e.Item.FrequencyDate), nullDate(e.Item.StartDate), nullDate(e.Item.EndDate),
			boolInt(e.Item.IsSeasonality), e.Day.SeasonalityMultiplier.String(), e.BudgetItemAmount.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting ledger row (item %d, date %d): %w", e.Item.BudgetItemID, e.Day.DateID, err)
		}
	}

	for _, n := range notices {
		_, err = tx.Exec(`INSERT INTO repair_notices
			(run_id, budget_item_id, item_name, month_number, year, from_day, to_day)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, n.ItemID, n.ItemName, n.Month.Month, n.Month.Year, n.From, n.To,
		)
		if err != nil {
			return fmt.Errorf("inserting repair notice: %w", err)
		}
	}

	return tx.Commit()
}

// Runs returns all stored runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, created_at, min_date, max_date, inputs_path,
		item_count, date_count, generated_calendar FROM runs ORDER BY created_at DESC, run_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var created, minDate, maxDate string
		var inputs sql.NullString
		var generated int
		if err := rows.Scan(&r.ID, &created, &minDate, &maxDate, &inputs,
			&r.ItemCount, &r.DateCount, &generated); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		r.From, _ = time.Parse(model.DateLayout, minDate)
		r.To, _ = time.Parse(model.DateLayout, maxDate)
		r.InputsPath = inputs.String
		r.GeneratedCalendar = generated != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// MonthTotal is the summed ledger amount of one display group in one month.
type MonthTotal struct {
	Month        model.MonthKey
	DisplayGroup string
	Amount       decimal.Decimal
}

// MonthTotals sums a run's ledger per month and display group. Amounts are
// stored as decimal text, so the sum is done here rather than in SQL.
func (s *Store) MonthTotals(runID string) ([]MonthTotal, error) {
	rows, err := s.db.Query(`SELECT year, month_number, display_group, budget_item_amount
		FROM ledger WHERE run_id = ? ORDER BY year, month_number, display_group`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var totals []MonthTotal
	for rows.Next() {
		var m model.MonthKey
		var group, amount string
		if err := rows.Scan(&m.Year, &m.Month, &group, &amount); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad amount %q: %w", runID, amount, err)
		}
		if n := len(totals); n > 0 && totals[n-1].Month == m && totals[n-1].DisplayGroup == group {
			totals[n-1].Amount = totals[n-1].Amount.Add(d)
			continue
		}
		totals = append(totals, MonthTotal{Month: m, DisplayGroup: group, Amount: d})
	}
	return totals, rows.Err()
}

// LedgerCount returns the number of ledger rows stored for a run.
func (s *Store) LedgerCount(runID string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM ledger WHERE run_id = ?", runID).Scan(&n)
	return n, err
}

// DeleteRun removes a run and, through the foreign keys, its rows.
func (s *Store) DeleteRun(runID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(model.DateLayout), Valid: true}
}
