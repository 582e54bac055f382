package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/tui/theme"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	InputsPath       string
	OutputDir        string
	MinDate          string
	MaxDate          string
	IncomeGroup      string
	GenerateCalendar bool
	Theme            string
}

// SetupValuesFrom pre-fills the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		InputsPath:       cfg.Inputs.Path,
		OutputDir:        cfg.Output.Dir,
		MinDate:          cfg.Budget.MinDate,
		MaxDate:          cfg.Budget.MaxDate,
		IncomeGroup:      cfg.Report.IncomeGroup,
		GenerateCalendar: cfg.Inputs.GenerateCalendar,
		Theme:            cfg.Appearance.Theme,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.Inputs.Path = strings.TrimSpace(v.InputsPath)
	cfg.Output.Dir = strings.TrimSpace(v.OutputDir)
	cfg.Budget.MinDate = strings.TrimSpace(v.MinDate)
	cfg.Budget.MaxDate = strings.TrimSpace(v.MaxDate)
	cfg.Report.IncomeGroup = strings.TrimSpace(v.IncomeGroup)
	cfg.Inputs.GenerateCalendar = v.GenerateCalendar
	cfg.Appearance.Theme = v.Theme
}

// NewSetupForm builds the setup wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetbook").
				Description("Point it at your inputs workbook and pick a budget range."),
			huh.NewInput().
				Title("Inputs workbook or CSV directory").
				Placeholder("Inputs.xlsx").
				Value(&vals.InputsPath).
				Validate(required("an inputs path")),
			huh.NewInput().
				Title("Output directory").
				Placeholder(".").
				Value(&vals.OutputDir),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget start (YYYY-MM-DD)").
				Description("Leave blank for January 1st of this year.").
				Value(&vals.MinDate).
				Validate(optionalDate),
			huh.NewInput().
				Title("Budget end (YYYY-MM-DD)").
				Description("Leave blank for December 31st of next year.").
				Value(&vals.MaxDate).
				Validate(optionalDate),
			huh.NewConfirm().
				Title("Generate the calendar instead of reading the Dates sheet?").
				Value(&vals.GenerateCalendar),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Display group holding income items").
				Value(&vals.IncomeGroup).
				Validate(required("an income group")),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(false)
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("enter %s", what)
		}
		return nil
	}
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := config.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}
