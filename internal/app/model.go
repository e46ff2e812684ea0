// Package app implements the Bubble Tea application: tab navigation, key
// dispatch and the auto-refresh schedule over the services layer.
package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/douglasdamasio/nbaterm/internal/logger"
	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
	"github.com/douglasdamasio/nbaterm/internal/services"
	"github.com/douglasdamasio/nbaterm/internal/ui"
	"github.com/douglasdamasio/nbaterm/internal/ui/styles"
)

// TabID identifies one of the top-level tabs.
type TabID int

const (
	TabGames TabID = iota
	TabStandings
	TabLeaders
	TabInfo
)

var tabNames = []string{"Games", "Standings", "Leaders", "Info"}

// KeyMap defines the application keybindings.
type KeyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Favorite key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		PrevDay:  key.NewBinding(key.WithKeys(",", "left"), key.WithHelp(",/←", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys(".", "right"), key.WithHelp("./→", "next day")),
		Today:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "today")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite only")),
		Refresh:  key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the root application model.
type Model struct {
	activeTab TabID
	state     *State
	services  *services.Manager
	keymap    KeyMap
	spinner   spinner.Model

	width  int
	height int
	ready  bool

	showHelp bool

	eventCh chan services.ServiceEvent

	// refreshGen invalidates in-flight auto-refresh timers when the
	// schedule changes.
	refreshGen int

	now func() time.Time
}

// NewModel initializes the application model, restoring the last viewed
// date (clamped to today).
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Highlight)

	m := &Model{
		activeTab: TabGames,
		services:  mgr,
		keymap:    DefaultKeyMap(),
		spinner:   s,
		now:       time.Now,
	}

	today := m.now().Format("2006-01-02")
	date := today
	if last := mgr.Config().LastGameDate; last != "" && last <= today {
		if _, err := time.Parse("2006-01-02", last); err == nil {
			date = last
		}
	}
	m.state = NewState(date)
	return m
}

// Init kicks off the subscription and the initial loads for every tab.
func (m *Model) Init() tea.Cmd {
	m.services.RefreshGames(m.state.Date(), false)
	m.services.RefreshStandings(false)
	m.services.RefreshLeaders(false)

	return tea.Batch(
		m.spinner.Tick,
		subscribeCmd(m.services),
		clockTickCmd(),
	)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case subscribedMsg:
		m.eventCh = msg.ch
		return m, waitForEventCmd(m.eventCh)

	case serviceEventMsg:
		cmd := m.handleServiceEvent(msg.event)
		return m, tea.Batch(cmd, waitForEventCmd(m.eventCh))

	case autoRefreshMsg:
		if msg.generation != m.refreshGen {
			return m, nil
		}
		m.services.RefreshGames(m.state.Date(), false)
		return m, nil

	case clockTickMsg:
		return m, clockTickCmd()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m.quit()
		case key.Matches(msg, m.keymap.Help), key.Matches(msg, m.keymap.Escape):
			m.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil

	case key.Matches(msg, m.keymap.NextTab):
		m.activeTab = TabID((int(m.activeTab) + 1) % len(tabNames))
		return nil

	case key.Matches(msg, m.keymap.PrevTab):
		m.activeTab = TabID((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
		return nil

	case key.Matches(msg, m.keymap.Refresh):
		m.refresh(true)
		return nil

	case key.Matches(msg, m.keymap.Escape):
		m.state.openGameID = ""
		return nil
	}

	if m.activeTab == TabGames {
		return m.handleGamesKey(msg)
	}
	return nil
}

// handleGamesKey handles the games tab keys. Date and filter keys win over
// the positional hotkeys they shadow (the 14th and 16th game of a day are
// reachable only while a box score is not open anyway).
func (m *Model) handleGamesKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.PrevDay):
		m.changeDate(-1)
		return nil

	case key.Matches(msg, m.keymap.NextDay):
		m.changeDate(+1)
		return nil

	case key.Matches(msg, m.keymap.Today):
		m.setDate(m.now().Format("2006-01-02"))
		return nil

	case key.Matches(msg, m.keymap.Favorite):
		m.state.favoriteOnly = !m.state.favoriteOnly
		m.reclassify()
		return nil
	}

	if m.state.openGameID != "" {
		return nil
	}
	runes := []rune(msg.String())
	if len(runes) == 1 {
		if game, ok := m.state.GameByHotkey(runes[0]); ok {
			m.state.OpenBoxScore(game.ID)
			m.services.RefreshBoxScore(game.ID, false)
		}
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	// Remember the viewed date for the next run.
	cfg := m.services.Config()
	cfg.LastGameDate = m.state.Date()
	if err := cfg.Save(); err != nil {
		logger.Warn("could not persist config on exit", "error", err)
	}
	return tea.Quit
}

func (m *Model) changeDate(days int) {
	m.state.ShiftDate(days)
	m.services.RefreshGames(m.state.Date(), false)
}

func (m *Model) setDate(date string) {
	m.state.SetDate(date)
	m.services.RefreshGames(date, false)
}

// refresh reloads the dataset behind the active tab.
func (m *Model) refresh(force bool) {
	switch m.activeTab {
	case TabGames:
		if m.state.openGameID != "" {
			m.services.RefreshBoxScore(m.state.openGameID, force)
			return
		}
		m.services.RefreshGames(m.state.Date(), force)
	case TabStandings:
		m.services.RefreshStandings(force)
	case TabLeaders:
		m.services.RefreshLeaders(force)
	}
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.GamesEvent:
		if e.Date != m.state.Date() {
			return nil
		}
		m.state.rawGames = e.Board.Games
		m.state.games.set(m.visibleStates(e.Board.Games), e.Freshness)
		return m.scheduleAutoRefresh(e.States)

	case services.StandingsEvent:
		m.state.standings.set(e.Standings, e.Freshness)

	case services.LeadersEvent:
		m.state.leaders.set(e.Leaders, e.Freshness)

	case services.BoxScoreEvent:
		if e.GameID == m.state.openGameID {
			m.state.boxScore.set(e.BoxScore, e.Freshness)
		}

	case services.ConfigReloadedEvent:
		m.reclassify()
		return m.scheduleAutoRefresh(m.state.games.data)

	case services.ErrorEvent:
		logger.Warn("dataset refresh failed", "dataset", e.Dataset, "error", e.Err)
		switch e.Dataset {
		case "games":
			m.state.games.fail(e.Err)
		case "standings":
			m.state.standings.fail(e.Err)
		case "leaders":
			m.state.leaders.fail(e.Err)
		case "boxscore":
			m.state.boxScore.fail(e.Err)
		}
	}
	return nil
}

// visibleStates applies sort and favorite filter, then classifies.
func (m *Model) visibleStates(games []models.Game) []scoreboard.GameState {
	cfg := m.services.Config()
	sorted := scoreboard.SortGames(games, cfg.GameSort, cfg.FavoriteTeam)
	if m.state.favoriteOnly {
		sorted = scoreboard.FilterFavorite(sorted, cfg.FavoriteTeam)
	}
	return scoreboard.Classify(sorted)
}

// reclassify recomputes the visible game states from the raw snapshot, e.g.
// after the favorite filter or sort mode changes.
func (m *Model) reclassify() {
	if m.state.rawGames == nil {
		return
	}
	m.state.games.data = m.visibleStates(m.state.rawGames)
}

// scheduleAutoRefresh arms the next refresh timer per the refresh policy.
func (m *Model) scheduleAutoRefresh(states []scoreboard.GameState) tea.Cmd {
	cfg := m.services.Config()
	interval := scoreboard.NextInterval(cfg.RefreshMode, cfg.RefreshInterval(), states)
	m.refreshGen++
	return autoRefreshCmd(m.refreshGen, interval)
}

// View renders the active tab under the tab bar.
func (m *Model) View() string {
	if !m.ready {
		return "initializing..."
	}
	if m.showHelp {
		return styles.Content.Render(ui.RenderHelp())
	}

	var b strings.Builder
	b.WriteString(ui.RenderTabBar(tabNames, int(m.activeTab), m.width))
	b.WriteString("\n")
	b.WriteString(styles.Content.Render(m.viewActiveTab()))
	return b.String()
}

func (m *Model) viewActiveTab() string {
	cfg := m.services.Config()
	switch m.activeTab {
	case TabGames:
		if m.state.openGameID != "" {
			return ui.RenderBoxScore(ui.BoxScoreView{
				Box:   m.state.boxScore.data,
				Stale: m.state.boxScore.stale(),
				Err:   m.state.boxScore.err,
				Width: m.width,
			})
		}
		if !m.state.games.loaded && m.state.games.err == nil {
			return m.spinner.View() + " loading games..."
		}
		return ui.RenderGames(ui.GamesView{
			Date:         m.state.Date(),
			States:       m.state.games.data,
			Stale:        m.state.games.stale(),
			Err:          m.state.games.err,
			FavoriteOnly: m.state.favoriteOnly,
			Favorite:     cfg.FavoriteTeam,
			Width:        m.width,
		})

	case TabStandings:
		if !m.state.standings.loaded && m.state.standings.err == nil {
			return m.spinner.View() + " loading standings..."
		}
		return ui.RenderStandings(ui.StandingsView{
			Standings: m.state.standings.data,
			Stale:     m.state.standings.stale(),
			Err:       m.state.standings.err,
			Favorite:  cfg.FavoriteTeam,
			Width:     m.width,
		})

	case TabLeaders:
		if !m.state.leaders.loaded && m.state.leaders.err == nil {
			return m.spinner.View() + " loading leaders..."
		}
		return ui.RenderLeaders(ui.LeadersView{
			Leaders: m.state.leaders.data,
			Stale:   m.state.leaders.stale(),
			Err:     m.state.leaders.err,
		})

	default:
		return ui.RenderInfo(ui.InfoView{
			Config:    cfg,
			CacheSize: m.services.Data().CacheLen(),
		})
	}
}
