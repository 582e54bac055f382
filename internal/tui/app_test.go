package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
	"github.com/theirongolddev/budgetbook/internal/tui/components"
)

func testRun(t *testing.T) *pipeline.Run {
	t.Helper()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	day1, day31 := 1, 31

	items := []model.BudgetItem{
		{BudgetItemID: 1, IsActive: true, ItemName: "Salary", DisplayGroup: "Income",
			ItemType: model.IncomeType, ItemAmount: decimal.NewFromInt(2000),
			Frequency: model.Monthly, FrequencyDay: &day1},
		{BudgetItemID: 2, IsActive: true, ItemName: "Rent", DisplayGroup: "Home",
			ItemType: "Expense", ItemAmount: decimal.NewFromInt(1000),
			Frequency: model.Monthly, FrequencyDay: &day31},
	}
	dates := pipeline.GenerateCalendar(from, to, nil)
	exp, err := pipeline.Expand(dates, items)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	return &pipeline.Run{
		Input:     &pipeline.LoadResult{Dates: dates, Items: items, GeneratedCalendar: true},
		Expansion: exp,
		Report:    pipeline.Plan(exp.Ledger, pipeline.PlanOptions{From: from, To: to, IncomeGroup: "Income"}),
	}
}

// loadedApp returns an app with an existing config and the test run loaded.
func loadedApp(t *testing.T) App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	run := testRun(t)
	a := NewApp(cfg, path, func(config.Config) (*pipeline.Run, error) { return run, nil })
	if a.needSetup {
		t.Fatal("app should skip setup when the config exists")
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(loadDataCmd(a.load, cfg)())
	return m.(App)
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m.(App)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewAppRunsSetupWithoutConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	a := NewApp(config.DefaultConfig(), path, nil)
	if !a.needSetup || a.setupForm == nil {
		t.Fatal("expected the setup form when no config file exists")
	}
}

func TestAppLoadsRun(t *testing.T) {
	a := loadedApp(t)
	if !a.loaded || a.loadErr != nil {
		t.Fatalf("loaded=%v err=%v", a.loaded, a.loadErr)
	}
	if got := len(a.ledgerView); got != 2*121 {
		t.Errorf("ledger rows = %d, want %d", got, 2*121)
	}
	if got := len(a.groups.Rows()); got != 2 {
		t.Errorf("group rows = %d, want 2", got)
	}
	if got := len(a.notices.Rows()); got != 2 {
		t.Errorf("notice rows = %d, want 2 (Feb and Apr)", got)
	}
	if !strings.Contains(a.View(), "Remaining") {
		t.Error("overview should show the remaining balance")
	}
}

func TestAppTabKeys(t *testing.T) {
	a := loadedApp(t)

	a = press(t, a, runes("g"))
	if a.activeTab != tabGroups {
		t.Errorf("g -> tab %d, want %d", a.activeTab, tabGroups)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabItems {
		t.Errorf("right -> tab %d, want %d", a.activeTab, tabItems)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if a.activeTab != tabNotices {
		t.Errorf("left wraps to tab %d, want %d", a.activeTab, tabNotices)
	}
}

func TestAppLedgerFilters(t *testing.T) {
	a := loadedApp(t)
	a = press(t, a, runes("l"), runes("/"))
	if !a.searching {
		t.Fatal("/ should open the search input on the ledger tab")
	}

	a = press(t, a, runes("rent"), tea.KeyMsg{Type: tea.KeyEnter})
	if a.searching || a.searchQuery != "rent" {
		t.Fatalf("searching=%v query=%q", a.searching, a.searchQuery)
	}
	if got := len(a.ledgerView); got != 121 {
		t.Errorf("rent rows = %d, want 121", got)
	}

	a = press(t, a, runes("b"))
	if got := len(a.ledgerView); got != 4 {
		t.Errorf("booked rent rows = %d, want 4", got)
	}
	for _, e := range a.ledgerView {
		if !e.BudgetItemAmount.Equal(decimal.NewFromInt(-1000)) {
			t.Errorf("%s booked %s", e.Day.Key(), e.BudgetItemAmount)
		}
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.searchQuery != "" || len(a.ledgerView) != 8 {
		t.Errorf("esc should clear the item filter, got %q with %d rows", a.searchQuery, len(a.ledgerView))
	}
}

func TestAppLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	a := NewApp(cfg, path, func(config.Config) (*pipeline.Run, error) {
		return nil, errors.New("reading Inputs.xlsx: no such file")
	})

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(loadDataCmd(a.load, cfg)())
	view := m.View()
	if !strings.Contains(view, "Could not build the budget") || !strings.Contains(view, "no such file") {
		t.Errorf("error view missing message:\n%s", view)
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should quit from the error view")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestTabAtX(t *testing.T) {
	a := loadedApp(t)
	if got := a.tabAtX(0); got != 0 {
		t.Errorf("tabAtX(0) = %d, want 0", got)
	}
	second := components.TabVisualWidth(components.Tabs[0], true) + 1
	if got := a.tabAtX(second); got != 1 {
		t.Errorf("tabAtX(%d) = %d, want 1", second, got)
	}
	if got := a.tabAtX(1000); got != -1 {
		t.Errorf("tabAtX(1000) = %d, want -1", got)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValuesFrom(cfg)
	vals.InputsPath = " budget/Inputs.xlsx "
	vals.MinDate = "2025-01-01"
	vals.Theme = "paper"
	vals.Apply(&cfg)

	if cfg.Inputs.Path != "budget/Inputs.xlsx" || cfg.Budget.MinDate != "2025-01-01" || cfg.Appearance.Theme != "paper" {
		t.Errorf("Apply did not copy values: %+v", cfg)
	}
	if err := optionalDate("2025-13-01"); err == nil {
		t.Error("optionalDate should reject an invalid month")
	}
	if err := optionalDate(""); err != nil {
		t.Errorf("optionalDate should accept blank: %v", err)
	}
}
