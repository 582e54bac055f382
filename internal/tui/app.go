// Package tui provides the interactive Bubble Tea browser for budget runs.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetbook/internal/cli"
	"github.com/theirongolddev/budgetbook/internal/config"
	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
	"github.com/theirongolddev/budgetbook/internal/tui/components"
	"github.com/theirongolddev/budgetbook/internal/tui/theme"
)

// LoadFunc builds a run from the given configuration.
type LoadFunc func(cfg config.Config) (*pipeline.Run, error)

// DataLoadedMsg is sent when the budget pipeline finishes.
type DataLoadedMsg struct {
	Run      *pipeline.Run
	LoadTime time.Duration
	Err      error
}

const (
	tabOverview = iota
	tabGroups
	tabItems
	tabLedger
	tabNotices
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 180
	minContentHeight = 5
)

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	configPath string
	load       LoadFunc

	// Data
	run      *pipeline.Run
	loaded   bool
	loadErr  error
	loadTime time.Duration
	saveErr  error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab tables
	groups  table.Model
	items   table.Model
	ledger  table.Model
	notices table.Model

	// Ledger filters
	searching   bool
	searchInput textinput.Model
	searchQuery string
	bookedOnly  bool
	ledgerView  []model.LedgerEntry

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
}

// NewApp creates the browser. When no config file exists at configPath the
// setup form runs before the first load.
func NewApp(cfg config.Config, configPath string, load LoadFunc) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	ti := textinput.New()
	ti.Placeholder = "item name"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	a := App{
		cfg:         cfg,
		configPath:  configPath,
		load:        load,
		groups:      newTable(groupColumns()),
		items:       newTable(itemColumns()),
		ledger:      newTable(ledgerColumns()),
		notices:     newTable(noticeColumns()),
		searchInput: ti,
		spinner:     sp,
		needSetup:   !config.Exists(configPath),
	}
	if a.needSetup {
		vals := SetupValuesFrom(cfg)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup {
		return tea.Batch(tea.EnableMouseCellMotion, a.setupForm.Init())
	}
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.load, a.cfg),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.resizeTables()
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.run = msg.Run
			a.populate()
		}
		return a, nil

	case tea.MouseMsg:
		if !a.ready() || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.forwardToTable(tea.KeyMsg{Type: tea.KeyUp})
		case tea.MouseButtonWheelDown:
			return a.forwardToTable(tea.KeyMsg{Type: tea.KeyDown})
		case tea.MouseButtonLeft:
			if msg.Y == 0 && msg.Action == tea.MouseActionPress {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if !a.loaded {
			return a, nil
		}

		if a.loadErr != nil {
			switch key {
			case "q", "esc":
				return a, tea.Quit
			case "r":
				return a.reload()
			}
			return a, nil
		}

		if a.activeTab == tabLedger && a.searching {
			return a.updateLedgerSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "r":
			return a.reload()
		case "/":
			if a.activeTab == tabLedger {
				a.searching = true
				a.searchInput.SetValue(a.searchQuery)
				a.searchInput.CursorEnd()
				return a, a.searchInput.Focus()
			}
			return a, nil
		case "b":
			if a.activeTab == tabLedger {
				a.bookedOnly = !a.bookedOnly
				a.refreshLedger()
			}
			return a, nil
		case "esc":
			if a.activeTab == tabLedger && a.searchQuery != "" {
				a.searchQuery = ""
				a.refreshLedger()
			}
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		return a.forwardToTable(msg)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.searching {
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) ready() bool {
	return a.loaded && a.loadErr == nil && !a.needSetup
}

func (a App) reload() (tea.Model, tea.Cmd) {
	a.loaded = false
	a.loadErr = nil
	return a, tea.Batch(loadDataCmd(a.load, a.cfg), a.spinner.Tick)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupVals.Apply(&a.cfg)
		a.saveErr = config.Save(a.configPath, a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
	case huh.StateAborted:
	default:
		return a, cmd
	}

	a.needSetup = false
	a.setupForm = nil
	return a, tea.Batch(loadDataCmd(a.load, a.cfg), a.spinner.Tick)
}

// activeTable returns the table shown on the current tab, or nil.
func (a *App) activeTable() *table.Model {
	switch a.activeTab {
	case tabGroups:
		return &a.groups
	case tabItems:
		return &a.items
	case tabLedger:
		return &a.ledger
	case tabNotices:
		return &a.notices
	}
	return nil
}

func (a App) forwardToTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	tbl := a.activeTable()
	if tbl == nil {
		return a, nil
	}
	var cmd tea.Cmd
	*tbl, cmd = tbl.Update(msg)
	return a, cmd
}

// populate fills every table from the loaded run.
func (a *App) populate() {
	rep := a.run.Report
	a.groups.SetRows(groupRows(rep))
	a.items.SetRows(itemRows(rep.Items))
	a.notices.SetRows(noticeRows(a.run.Expansion.Notices))
	a.refreshLedger()
}

// refreshLedger reapplies the ledger filters.
func (a *App) refreshLedger() {
	if a.run == nil {
		return
	}
	entries := a.run.Expansion.Ledger
	if a.bookedOnly {
		entries = pipeline.FilterBooked(entries)
	}
	if a.searchQuery != "" {
		entries = pipeline.FilterByItem(entries, a.searchQuery)
	}
	a.ledgerView = entries
	a.ledger.SetRows(ledgerRows(entries))
	a.ledger.SetCursor(0)
}

func (a *App) resizeTables() {
	h := a.height - 6
	if h < minContentHeight {
		h = minContentHeight
	}
	w := a.contentWidth()
	for _, tbl := range []*table.Model{&a.groups, &a.items, &a.ledger, &a.notices} {
		tbl.SetWidth(w)
		tbl.SetHeight(h)
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return a.viewError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetbook needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ budgetbook"))
	b.WriteString(subtitleStyle.Render(" · Budget Workbook"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Expanding " + a.cfg.Inputs.Path + "..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3).
		Width(a.contentWidth() * 2 / 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := titleStyle.Render("Could not build the budget") + "\n\n" +
		a.loadErr.Error() + "\n\n" +
		dimStyle.Render("r retry · q quit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body))
}

type binding struct{ key, desc string }

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Key).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o g i l n", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through rows"},
		}},
		{"Ledger", []binding{
			{"/", "Filter by item name"},
			{"b", "Toggle booked rows only"},
			{"Esc", "Clear filter"},
		}},
		{"Actions", []binding{
			{"r", "Reload inputs"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + run summary line
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	rep := a.run.Report
	summary := pillStyle.Render(" ") +
		accentStyle.Render(rep.From.Format(model.DateLayout)+" → "+rep.To.Format(model.DateLayout)) +
		pillStyle.Render(" │ income group ") + accentStyle.Render(a.cfg.Report.IncomeGroup)
	if a.activeTab == tabLedger {
		if a.searchQuery != "" {
			summary += pillStyle.Render(" │ item ") + accentStyle.Render(a.searchQuery)
		}
		if a.bookedOnly {
			summary += pillStyle.Render(" │ ") + accentStyle.Render("booked only")
		}
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" + summary

	// 2. Status bar
	rows := cli.FormatNumber(int64(len(a.run.Expansion.Ledger)))
	if a.activeTab == tabLedger && len(a.ledgerView) != len(a.run.Expansion.Ledger) {
		rows = cli.FormatNumber(int64(len(a.ledgerView))) + "/" + rows
	}
	info := fmt.Sprintf("%s rows · %d items · %.1fs",
		rows,
		len(a.run.Input.Items),
		a.loadTime.Seconds())
	if a.saveErr != nil {
		info = "config not saved: " + a.saveErr.Error()
	}
	statusBar := components.RenderStatusBar(w, a.hints(), info)

	// 3. Content zone
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabGroups:
		content = a.groups.View()
	case tabItems:
		content = a.items.View()
	case tabLedger:
		content = a.ledger.View()
		if a.searching {
			content = a.searchInput.View() + "\n" + content
		}
	case tabNotices:
		if len(a.run.Expansion.Notices) == 0 {
			content = pillStyle.Render("  No anchor days needed repair.")
		} else {
			content = a.notices.View()
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) hints() string {
	if a.activeTab == tabLedger {
		if a.searching {
			return "enter apply · esc cancel"
		}
		return "/ filter · b booked · ? help · q quit"
	}
	return "← → tabs · r reload · ? help · q quit"
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd runs the pipeline off the UI goroutine.
func loadDataCmd(load LoadFunc, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		run, err := load(cfg)
		return DataLoadedMsg{Run: run, LoadTime: time.Since(start), Err: err}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// ─── Ledger Search ──────────────────────────────────────────────

// updateLedgerSearch handles key events while the filter input is open.
func (a App) updateLedgerSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searchQuery = strings.TrimSpace(a.searchInput.Value())
		a.searching = false
		a.searchInput.Blur()
		a.refreshLedger()
		return a, nil

	case "esc":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}
