// Package config loads and saves the budgetbook TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvInputs    = "BUDGETBOOK_INPUTS"
	EnvOutputDir = "BUDGETBOOK_OUTPUT_DIR"
)

// Config holds all budgetbook configuration.
type Config struct {
	Budget      BudgetConfig      `toml:"budget"`
	Inputs      InputsConfig      `toml:"inputs"`
	Output      OutputConfig      `toml:"output"`
	Report      ReportConfig      `toml:"report"`
	Seasonality SeasonalityConfig `toml:"seasonality"`
	Appearance  AppearanceConfig  `toml:"appearance"`
}

// BudgetConfig holds the budget date range. Dates are YYYY-MM-DD; empty
// values fall back to DefaultRange.
type BudgetConfig struct {
	MinDate string `toml:"min_date,omitempty"`
	MaxDate string `toml:"max_date,omitempty"`
}

// InputsConfig locates the input tables.
type InputsConfig struct {
	Path             string `toml:"path"`
	DatesSheet       string `toml:"dates_sheet"`
	ItemsSheet       string `toml:"items_sheet"`
	GenerateCalendar bool   `toml:"generate_calendar"`
}

// OutputConfig controls where the workbook is written.
type OutputConfig struct {
	Dir          string `toml:"dir"`
	Template     string `toml:"template,omitempty"`
	SummarySheet string `toml:"summary_sheet"`
	DataSheet    string `toml:"data_sheet"`
}

// ReportConfig holds summary sheet settings.
type ReportConfig struct {
	IncomeGroup string  `toml:"income_group"`
	FontName    string  `toml:"font_name"`
	FontSize    float64 `toml:"font_size"`
	Zoom        float64 `toml:"zoom"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Inputs: InputsConfig{
			Path:       "Inputs.xlsx",
			DatesSheet: "Dates",
			ItemsSheet: "Budget Items",
		},
		Output: OutputConfig{
			Dir:          ".",
			SummarySheet: "Budget",
			DataSheet:    "Data",
		},
		Report: ReportConfig{
			IncomeGroup: "Income",
			FontName:    "Arial",
			FontSize:    10,
			Zoom:        80,
		},
		Appearance: AppearanceConfig{
			Theme: "ledger",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetbook")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path (the default path when empty),
// returning defaults if it doesn't exist. Environment overrides, including
// those from a .env file in the working directory, are applied last.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvInputs); v != "" {
		cfg.Inputs.Path = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.Output.Dir = v
	}
}

// Save writes the config to path (the default path when empty).
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at path (the default path
// when empty).
func Exists(path string) bool {
	if path == "" {
		path = Path()
	}
	_, err := os.Stat(path)
	return err == nil
}
