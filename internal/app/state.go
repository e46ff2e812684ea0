package app

import (
	"time"

	"github.com/douglasdamasio/nbaterm/internal/cache"
	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
)

// datasetState is one dataset's latest snapshot as seen by the UI: either
// data with a freshness tag, or the error that prevented loading it.
type datasetState[T any] struct {
	data      T
	freshness cache.Freshness
	err       error
	loaded    bool
}

func (d *datasetState[T]) set(data T, fr cache.Freshness) {
	d.data = data
	d.freshness = fr
	d.err = nil
	d.loaded = true
}

func (d *datasetState[T]) fail(err error) {
	// Keep the previous data visible; the error renders alongside it.
	d.err = err
}

func (d *datasetState[T]) stale() bool {
	return d.loaded && d.freshness == cache.StaleUsable
}

// State is the application's view data, mutated only from the Update loop.
type State struct {
	// date currently shown on the games tab (YYYY-MM-DD)
	date string

	// rawGames is the unfiltered snapshot, kept so the favorite filter and
	// sort mode can be re-applied without a refetch.
	rawGames  []models.Game
	games     datasetState[[]scoreboard.GameState]
	standings datasetState[*models.Standings]
	leaders   datasetState[*models.LeagueLeaders]
	boxScore  datasetState[*models.BoxScore]

	// game whose box score is open; empty when the list is shown
	openGameID string

	favoriteOnly bool
}

// NewState creates view state pinned to the given initial date.
func NewState(date string) *State {
	return &State{date: date}
}

// Date returns the date shown on the games tab.
func (s *State) Date() string { return s.date }

// SetDate switches the games tab to date and drops the day's game list so
// the stale day's games are not shown under the new header.
func (s *State) SetDate(date string) {
	if date == s.date {
		return
	}
	s.date = date
	s.rawGames = nil
	s.games = datasetState[[]scoreboard.GameState]{}
	s.openGameID = ""
}

// ShiftDate moves the shown date by days (negative = back).
func (s *State) ShiftDate(days int) {
	t, err := time.Parse("2006-01-02", s.date)
	if err != nil {
		return
	}
	s.SetDate(t.AddDate(0, 0, days).Format("2006-01-02"))
}

// OpenBoxScore switches the games tab to the box score for gameID,
// dropping any previously shown detail.
func (s *State) OpenBoxScore(gameID string) {
	s.openGameID = gameID
	s.boxScore = datasetState[*models.BoxScore]{}
}

// GameByHotkey resolves a hotkey press to a game on the shown date.
func (s *State) GameByHotkey(r rune) (models.Game, bool) {
	for _, st := range s.games.data {
		if st.Hotkey == r && st.Hotkey != 0 {
			return st.Game, true
		}
	}
	return models.Game{}, false
}
