package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetbook/internal/tui/theme"
)

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 4}, {81, 4}, {7, 3}, {120, 5}} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should return nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("ledger")

	row := MetricCardRow([]Metric{
		{Label: "Income", Value: "4,000.00"},
		{Label: "Expenses", Value: "-1,000.00", Negative: true},
		{Label: "Remaining", Value: "3,000.00", Note: "75.0% of income"},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "75.0% of income") {
		t.Error("note missing from card")
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestTabBarWidthMatchesTabWidths(t *testing.T) {
	for active := range Tabs {
		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		if got := lipgloss.Width(RenderTabBar(active, 200)); got != want {
			t.Errorf("active=%d: tab bar width %d, want %d", active, got, want)
		}
	}
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(60, "[q]uit", "Jan 2024 - Dec 2024")
	if w := lipgloss.Width(bar); w != 60 {
		t.Fatalf("status bar width = %d, want 60", w)
	}
	if !strings.HasSuffix(strings.TrimRight(bar, " "), "Dec 2024") {
		t.Errorf("run info should be right-aligned: %q", bar)
	}
}
