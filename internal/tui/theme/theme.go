// Package theme defines color themes for the budget browser.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors the browser draws with. Income and positive
// balances use Green, expenses and shortfalls use Red.
type Theme struct {
	Name         string
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color // card and table borders
	BorderAccent lipgloss.Color // overlays
	TextDim      lipgloss.Color // hints
	TextMuted    lipgloss.Color // labels, headers
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Key          lipgloss.Color // shortcut keys in the help overlay
	Green        lipgloss.Color
	Red          lipgloss.Color
}

// Active is the currently selected theme.
var Active = Ledger

// Ledger is the default dark theme: green-ink accents on charcoal.
var Ledger = Theme{
	Name:         "ledger",
	SurfaceHover: lipgloss.Color("#23302A"),
	Border:       lipgloss.Color("#3B4A42"),
	BorderAccent: lipgloss.Color("#4FA37A"),
	TextDim:      lipgloss.Color("#5E6B64"),
	TextMuted:    lipgloss.Color("#93A39A"),
	TextPrimary:  lipgloss.Color("#E8F0EA"),
	Accent:       lipgloss.Color("#4FA37A"),
	AccentBright: lipgloss.Color("#7CCBA2"),
	Key:          lipgloss.Color("#D9B45A"),
	Green:        lipgloss.Color("#6CC08B"),
	Red:          lipgloss.Color("#E0675C"),
}

// Paper suits light terminals: dark ink with accountant's blue and red.
var Paper = Theme{
	Name:         "paper",
	SurfaceHover: lipgloss.Color("#E3E8F2"),
	Border:       lipgloss.Color("#B8C0CC"),
	BorderAccent: lipgloss.Color("#2F5FA7"),
	TextDim:      lipgloss.Color("#8A929E"),
	TextMuted:    lipgloss.Color("#5A6270"),
	TextPrimary:  lipgloss.Color("#1D2430"),
	Accent:       lipgloss.Color("#2F5FA7"),
	AccentBright: lipgloss.Color("#1F4482"),
	Key:          lipgloss.Color("#8A5A00"),
	Green:        lipgloss.Color("#2E7D32"),
	Red:          lipgloss.Color("#B3261E"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Key:          lipgloss.Color("3"),
	Green:        lipgloss.Color("2"),
	Red:          lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{Ledger, Paper, Terminal}

// ByName returns a theme by its name, defaulting to Ledger.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Ledger
}

// AmountColor returns the color for an amount: red for negative figures,
// green otherwise.
func (t Theme) AmountColor(negative bool) lipgloss.Color {
	if negative {
		return t.Red
	}
	return t.Green
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
