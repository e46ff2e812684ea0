// Package services orchestrates data acquisition for the TUI: it owns the
// data service and the config watcher, fans dataset updates out to
// subscribers, and raises desktop notifications for the favorite team.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/douglasdamasio/nbaterm/internal/cache"
	"github.com/douglasdamasio/nbaterm/internal/config"
	"github.com/douglasdamasio/nbaterm/internal/logger"
	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
	"github.com/douglasdamasio/nbaterm/internal/services/data"
	"github.com/douglasdamasio/nbaterm/internal/upstream"
)

const refreshTimeout = 30 * time.Second

type (
	// GamesEvent carries a refreshed scoreboard with its classified states.
	GamesEvent struct {
		Date      string
		Board     *models.Scoreboard
		States    []scoreboard.GameState
		Freshness cache.Freshness
	}

	// StandingsEvent carries a refreshed standings snapshot.
	StandingsEvent struct {
		Standings *models.Standings
		Freshness cache.Freshness
	}

	// LeadersEvent carries a refreshed leaders snapshot.
	LeadersEvent struct {
		Leaders   *models.LeagueLeaders
		Freshness cache.Freshness
	}

	// BoxScoreEvent carries a refreshed single-game detail snapshot.
	BoxScoreEvent struct {
		GameID    string
		BoxScore  *models.BoxScore
		Freshness cache.Freshness
	}

	// ConfigReloadedEvent is emitted when the config file changes on disk.
	ConfigReloadedEvent struct {
		Config *config.Config
	}

	// ErrorEvent is emitted when a dataset refresh fails with no usable
	// cached fallback. Failures are per dataset; other datasets continue.
	ErrorEvent struct {
		Dataset string
		Err     error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (GamesEvent) isServiceEvent()          {}
func (StandingsEvent) isServiceEvent()      {}
func (LeadersEvent) isServiceEvent()        {}
func (BoxScoreEvent) isServiceEvent()       {}
func (ConfigReloadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Manager coordinates refreshes and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	subscribers []chan<- ServiceEvent

	data    *data.Service
	watcher *config.Watcher
	stop    chan struct{}

	// previous favorite-game statuses, for transition notifications
	prevStatus map[string]int
	notify     func(title, body string)
}

// NewManager builds the acquisition stack and starts the config watcher.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:        cfg,
		data:       data.New(cfg, upstream.NewClient()),
		stop:       make(chan struct{}),
		prevStatus: make(map[string]int),
		notify: func(title, body string) {
			_ = beeep.Notify(title, body, "")
		},
	}

	watcher, err := config.Watch(cfg.Path())
	if err != nil {
		// Live reload is a convenience; run without it.
		logger.Warn("config watcher unavailable", "error", err)
	} else {
		m.watcher = watcher
		go m.watchConfig()
	}

	return m, nil
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Data returns the underlying data service.
func (m *Manager) Data() *data.Service {
	return m.data
}

// RefreshGames fetches the scoreboard for date (empty = today) in the
// background and broadcasts the result. force bypasses a fresh cache entry.
func (m *Manager) RefreshGames(date string, force bool) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if force {
			m.data.InvalidateGames(date)
		}
		sb, fr, err := m.data.Games(ctx, date)
		if err != nil {
			m.broadcast(ErrorEvent{Dataset: "games", Err: err})
			return
		}

		cfg := m.Config()
		sorted := scoreboard.SortGames(sb.Games, cfg.GameSort, cfg.FavoriteTeam)
		states := scoreboard.Classify(sorted)
		m.checkNotifications(sb.Games)
		m.broadcast(GamesEvent{Date: date, Board: sb, States: states, Freshness: fr})
	}()
}

// RefreshStandings fetches standings in the background.
func (m *Manager) RefreshStandings(force bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if force {
			m.data.Invalidate(cache.StandingsKey())
		}
		st, fr, err := m.data.Standings(ctx)
		if err != nil {
			m.broadcast(ErrorEvent{Dataset: "standings", Err: err})
			return
		}
		m.broadcast(StandingsEvent{Standings: st, Freshness: fr})
	}()
}

// RefreshLeaders fetches league leaders in the background.
func (m *Manager) RefreshLeaders(force bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if force {
			m.data.Invalidate(cache.LeadersKey())
		}
		ll, fr, err := m.data.Leaders(ctx)
		if err != nil {
			m.broadcast(ErrorEvent{Dataset: "leaders", Err: err})
			return
		}
		m.broadcast(LeadersEvent{Leaders: ll, Freshness: fr})
	}()
}

// RefreshBoxScore fetches one game's detail in the background.
func (m *Manager) RefreshBoxScore(gameID string, force bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if force {
			m.data.Invalidate(cache.GameDetailKey(gameID))
		}
		bs, fr, err := m.data.BoxScore(ctx, gameID)
		if err != nil {
			m.broadcast(ErrorEvent{Dataset: "boxscore", Err: err})
			return
		}
		m.broadcast(BoxScoreEvent{GameID: gameID, BoxScore: bs, Freshness: fr})
	}()
}

// checkNotifications raises a desktop notification when the favorite team's
// game goes live or final. One notification per transition.
func (m *Manager) checkNotifications(games []models.Game) {
	favorite := m.Config().FavoriteTeam
	if favorite == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range games {
		if !g.HasTeam(favorite) {
			continue
		}
		prev, seen := m.prevStatus[g.ID]
		m.prevStatus[g.ID] = g.Status
		if !seen || prev == g.Status {
			continue
		}

		matchup := fmt.Sprintf("%s %d : %d %s", g.Away.Tricode, g.Away.Score, g.Home.Score, g.Home.Tricode)
		switch g.Status {
		case models.StatusLive:
			m.notify(fmt.Sprintf("%s tip-off", favorite), matchup)
		case models.StatusFinal:
			m.notify(fmt.Sprintf("%s final", favorite), matchup)
		}
	}
}

// watchConfig applies config file changes and tells subscribers.
func (m *Manager) watchConfig() {
	for {
		select {
		case cfg, ok := <-m.watcher.Events():
			if !ok {
				return
			}
			m.mu.Lock()
			m.cfg = cfg
			m.mu.Unlock()
			m.data.SetConfig(cfg)
			logger.Info("config reloaded", "path", cfg.Path())
			m.broadcast(ConfigReloadedEvent{Config: cfg})

		case <-m.stop:
			return
		}
	}
}

// broadcast sends an event to all subscribers, dropping it for any
// subscriber whose channel is full.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
		}
	}
}

// Subscribe creates a channel for receiving service events and a tea.Cmd
// that waits for the first one.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close stops the watcher and releases all subscribers.
func (m *Manager) Close() error {
	close(m.stop)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
