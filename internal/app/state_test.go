package app

import (
	"testing"

	"github.com/douglasdamasio/nbaterm/internal/cache"
	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
)

func TestShiftDate(t *testing.T) {
	s := NewState("2025-01-10")

	s.ShiftDate(-1)
	if s.Date() != "2025-01-09" {
		t.Errorf("date = %s, want 2025-01-09", s.Date())
	}
	s.ShiftDate(2)
	if s.Date() != "2025-01-11" {
		t.Errorf("date = %s, want 2025-01-11", s.Date())
	}

	// Month boundary.
	s.SetDate("2025-02-01")
	s.ShiftDate(-1)
	if s.Date() != "2025-01-31" {
		t.Errorf("date = %s, want 2025-01-31", s.Date())
	}
}

func TestSetDateDropsOldGames(t *testing.T) {
	s := NewState("2025-01-10")
	s.rawGames = []models.Game{{ID: "g1"}}
	s.games.set(scoreboard.Classify(s.rawGames), cache.Fresh)
	s.openGameID = "g1"

	s.SetDate("2025-01-11")
	if s.games.loaded || s.rawGames != nil || s.openGameID != "" {
		t.Error("SetDate kept the previous day's view state")
	}

	// Re-setting the same date is a no-op.
	s.games.set(nil, cache.Fresh)
	s.SetDate("2025-01-11")
	if !s.games.loaded {
		t.Error("SetDate with the same date reset state")
	}
}

func TestGameByHotkey(t *testing.T) {
	s := NewState("2025-01-10")
	games := []models.Game{{ID: "first"}, {ID: "second"}}
	s.games.set(scoreboard.Classify(games), cache.Fresh)

	g, ok := s.GameByHotkey('2')
	if !ok || g.ID != "second" {
		t.Errorf("GameByHotkey('2') = (%v, %v), want second", g.ID, ok)
	}
	if _, ok := s.GameByHotkey('9'); ok {
		t.Error("GameByHotkey('9') = true for a 2-game day")
	}
	if _, ok := s.GameByHotkey(0); ok {
		t.Error("GameByHotkey(0) matched the no-hotkey marker")
	}
}

func TestDatasetStateFailureKeepsData(t *testing.T) {
	s := NewState("2025-01-10")
	s.games.set(scoreboard.Classify([]models.Game{{ID: "g"}}), cache.StaleUsable)

	s.games.fail(errTest)
	if !s.games.loaded || len(s.games.data) != 1 {
		t.Error("failure dropped previously loaded data")
	}
	if s.games.err == nil || !s.games.stale() {
		t.Error("failure state not recorded")
	}
}

type testError struct{}

func (testError) Error() string { return "test error" }

var errTest = testError{}
