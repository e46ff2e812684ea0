// Package scoreboard turns raw game records into display-ready states and
// decides when the next automatic refresh should happen.
package scoreboard

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/douglasdamasio/nbaterm/internal/models"
)

// Category is the display grouping of a game.
type Category int

const (
	Scheduled Category = iota
	Live
	Final
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case Scheduled:
		return "scheduled"
	case Live:
		return "live"
	case Final:
		return "final"
	default:
		return "unknown"
	}
}

// GameState is the display-ready derivation of one raw game. It is
// recomputed on every read and never persisted on its own.
type GameState struct {
	Game       models.Game
	Category   Category
	HomeScore  int
	AwayScore  int
	ClockLabel string
	// Hotkey selects the game from the keyboard; zero for games past the
	// 36th of the day.
	Hotkey rune
}

// hotkeyAt returns the positional hotkey: 1..9, 0, then a..j. Positions past
// the 36th game get none.
func hotkeyAt(pos int) rune {
	switch {
	case pos < 9:
		return rune('1' + pos)
	case pos == 9:
		return '0'
	case pos < 36:
		return rune('a' + pos - 10)
	default:
		return 0
	}
}

// isoClock matches the upstream live clock format, e.g. "PT06M42.00S".
var isoClock = regexp.MustCompile(`^PT(\d+)M(\d+)(?:\.\d+)?S$`)

// clockLabel formats the live clock as "Qn M:SS". Break-boundary texts like
// "Halftime" or "End Q3" pass through as the upstream reports them; an
// unparseable clock falls back to the status text.
func clockLabel(g models.Game) string {
	text := strings.TrimSpace(g.StatusText)
	lower := strings.ToLower(text)
	if strings.Contains(lower, "half") || strings.HasPrefix(lower, "end") {
		return text
	}
	if m := isoClock.FindStringSubmatch(g.Clock); m != nil && g.Period > 0 {
		mins, _ := strconv.Atoi(m[1])
		secs, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("Q%d %d:%02d", g.Period, mins, secs)
	}
	return text
}

// Classify maps an ordered day of raw games to display states. Input order
// is preserved; hotkeys are assigned positionally. Sorting is the caller's
// concern (see SortGames).
func Classify(games []models.Game) []GameState {
	states := make([]GameState, 0, len(games))
	for i, g := range games {
		st := GameState{
			Game:      g,
			HomeScore: g.Home.Score,
			AwayScore: g.Away.Score,
			Hotkey:    hotkeyAt(i),
		}
		switch {
		case g.Status == models.StatusFinal:
			st.Category = Final
		case g.Started():
			// Covers the live status code and the feed lag where points are
			// on the board before the code flips.
			st.Category = Live
			st.ClockLabel = clockLabel(g)
		default:
			st.Category = Scheduled
		}
		states = append(states, st)
	}
	return states
}

// Sort orders accepted by SortGames.
const (
	SortTime          = "time"
	SortFavoriteFirst = "favorite_first"
)

// SortGames orders games before classification. "time" sorts by scheduled
// start; "favorite_first" keeps time order but floats the favorite team's
// games to the front. The input slice is not modified.
func SortGames(games []models.Game, mode, favorite string) []models.Game {
	sorted := make([]models.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTimeUTC.Before(sorted[j].StartTimeUTC)
	})
	if mode == SortFavoriteFirst && favorite != "" {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].HasTeam(favorite) && !sorted[j].HasTeam(favorite)
		})
	}
	return sorted
}

// FilterFavorite keeps only the games involving the favorite team. An empty
// favorite returns the input unchanged.
func FilterFavorite(games []models.Game, favorite string) []models.Game {
	if favorite == "" {
		return games
	}
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.HasTeam(favorite) {
			out = append(out, g)
		}
	}
	return out
}
