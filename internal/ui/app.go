package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/dates"
	"github.com/nvlko/daybook/internal/diary"
	"github.com/nvlko/daybook/internal/settings"
	"github.com/nvlko/daybook/internal/stats"
)

// View represents the current active view.
type View int

const (
	ViewDiary View = iota
	ViewCatalogue
	ViewStats
	ViewSettings
)

const refreshTick = 500 * time.Millisecond

// snapshot bundles the read-side of every store for one frame.
type snapshot struct {
	days      map[string]diary.FormattedDay
	catalogue catalogue.Snapshot
	settings  settings.Settings
	stats     stats.Snapshot
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	diary     *diary.Store
	catalogue *catalogue.Store
	settings  *settings.Store
	stats     *stats.Aggregator

	keys  keyMap
	theme Theme

	currentView  View
	width        int
	height       int
	ready        bool
	showHelp     bool
	selectedDate dates.Day

	// Cursor positions per view.
	diaryRow     int
	catalogueRow int
	settingsRow  int

	// Modal form state. Nil means no form is open.
	form *form

	// Mutation-in-flight flag; forms and mutating keys are disabled
	// while set.
	busy   bool
	status statusLine

	snap snapshot
}

type statusLine struct {
	text  string
	isErr bool
}

// New creates the root Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:          ctx,
		diary:        opts.Diary,
		catalogue:    opts.Catalogue,
		settings:     opts.Settings,
		stats:        opts.Stats,
		keys:         DefaultKeyMap(),
		currentView:  ViewDiary,
		selectedDate: dates.Today(),
	}
	m.snap = m.readSnapshot()
	m.theme = ThemeFor(m.snap.settings.DarkTheme)
	return m
}

func (m Model) readSnapshot() snapshot {
	return snapshot{
		days:      m.diary.Formatted(),
		catalogue: m.catalogue.Snapshot(),
		settings:  m.settings.Current(),
		stats:     m.stats.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.snap = m.readSnapshot()
		m.theme = ThemeFor(m.snap.settings.DarkTheme)
		if !m.snap.settings.ChapterFood && m.currentView != ViewSettings {
			m.currentView = ViewSettings
		}
		m.clampCursors()
		return m, tickCmd()

	case mutationMsg:
		m.busy = false
		if msg.err != nil {
			m.status = statusLine{text: msg.err.Error(), isErr: true}
			// Keep the form open so the input is not lost.
			return m, nil
		}
		m.status = statusLine{text: msg.note}
		m.form = nil
		m.snap = m.readSnapshot()
		m.clampCursors()
		return m, nil
	}

	if m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// An open form captures everything except quit.
	if m.form != nil {
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.cycleView()
		return m, nil

	case key.Matches(msg, m.keys.ViewDiary):
		if m.snap.settings.ChapterFood {
			m.currentView = ViewDiary
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewCatalogue):
		if m.snap.settings.ChapterFood {
			m.currentView = ViewCatalogue
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewStats):
		if m.snap.settings.ChapterFood {
			m.currentView = ViewStats
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewSettings):
		m.currentView = ViewSettings
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.snap.settings.ChapterFood {
			m.currentView = ViewDiary
		}
		m.status = statusLine{}
		return m, nil
	}

	switch m.currentView {
	case ViewDiary:
		return m.handleDiaryKey(msg)
	case ViewCatalogue:
		return m.handleCatalogueKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

// cycleView moves to the next visible view. Views of a disabled chapter
// are skipped.
func (m *Model) cycleView() {
	order := []View{ViewDiary, ViewCatalogue, ViewStats, ViewSettings}
	idx := 0
	for i, v := range order {
		if v == m.currentView {
			idx = i
			break
		}
	}
	for range order {
		idx = (idx + 1) % len(order)
		next := order[idx]
		if next == ViewSettings || m.snap.settings.ChapterFood {
			m.currentView = next
			return
		}
	}
}

// clampCursors keeps the per-view cursors inside the current data.
func (m *Model) clampCursors() {
	if n := len(m.currentDay().Entries); m.diaryRow >= n {
		m.diaryRow = max(0, n-1)
	}
	if n := len(m.snap.catalogue.Sorted()); m.catalogueRow >= n {
		m.catalogueRow = max(0, n-1)
	}
}

// currentDay returns the formatted record for the selected date, which may
// be an empty zero value when the day carries no data.
func (m Model) currentDay() diary.FormattedDay {
	day := m.snap.days[m.selectedDate.ISO()]
	if day.Date == "" {
		day.Date = m.selectedDate.ISO()
	}
	return day
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
