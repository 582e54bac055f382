package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvInputs, "")
	t.Setenv(EnvOutputDir, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv(EnvInputs, "")
	t.Setenv(EnvOutputDir, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Budget.MinDate = "2024-01-01"
	cfg.Budget.MaxDate = "2024-12-31"
	cfg.Inputs.Path = "/data/Inputs.xlsx"
	cfg.Report.IncomeGroup = "Earnings"
	cfg.Seasonality.Months = map[string]float64{"dec": 1.25}

	require.NoError(t, Save(path, cfg))
	assert.True(t, Exists(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvInputs, "")
	t.Setenv(EnvOutputDir, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[report]\nzoom = 100\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 100, cfg.Report.Zoom, 0)
	assert.Equal(t, "Income", cfg.Report.IncomeGroup)
	assert.Equal(t, "Budget Items", cfg.Inputs.ItemsSheet)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvInputs, "/tmp/inputs")
	t.Setenv(EnvOutputDir, "/tmp/out")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/inputs", cfg.Inputs.Path)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[report\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestBudgetRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	from, to, err := BudgetConfig{}.Range(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), to)

	from, to, err = BudgetConfig{MinDate: "2024-03-01"}.Range(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 2026, to.Year())

	_, _, err = BudgetConfig{MinDate: "03/01/2024"}.Range(now)
	assert.ErrorContains(t, err, "min_date")

	_, _, err = BudgetConfig{MinDate: "2024-03-01", MaxDate: "2024-02-01"}.Range(now)
	assert.ErrorContains(t, err, "before min_date")
}

func TestSeasonalityMultipliers(t *testing.T) {
	got, err := SeasonalityConfig{Months: map[string]float64{"7": 1.5, "December": 2, "jan": 0.5}}.Multipliers()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "1.5", got[7].String())
	assert.Equal(t, "2", got[12].String())
	assert.Equal(t, "0.5", got[1].String())

	_, err = SeasonalityConfig{Months: map[string]float64{"13": 1}}.Multipliers()
	assert.Error(t, err)

	_, err = SeasonalityConfig{Months: map[string]float64{"jul": 1, "7": 2}}.Multipliers()
	assert.ErrorContains(t, err, "twice")

	_, err = SeasonalityConfig{Months: map[string]float64{"smarch": 1}}.Multipliers()
	assert.ErrorContains(t, err, "unknown month")
}
