// Package models contains the data structures shared across services and UI.
package models

import "time"

// Upstream game status codes.
const (
	StatusScheduled = 1
	StatusLive      = 2
	StatusFinal     = 3
)

// PeriodScore is the score a team posted in a single period.
type PeriodScore struct {
	Period int `json:"period"`
	Score  int `json:"score"`
}

// TeamScore is one side of a game as reported by the scoreboard.
type TeamScore struct {
	TeamID   int64         `json:"teamId"`
	Tricode  string        `json:"teamTricode"`
	Name     string        `json:"teamName"`
	City     string        `json:"teamCity"`
	Score    int           `json:"score"`
	Wins     int           `json:"wins"`
	Losses   int           `json:"losses"`
	Periods  []PeriodScore `json:"periods,omitempty"`
}

// Game is the raw upstream representation of one game. It carries everything
// the classifier needs: status code and text, period, game clock and the
// scheduled start time.
type Game struct {
	ID           string    `json:"gameId"`
	Status       int       `json:"gameStatus"`
	StatusText   string    `json:"gameStatusText"`
	Period       int       `json:"period"`
	Clock        string    `json:"gameClock"`
	StartTimeUTC time.Time `json:"gameTimeUTC"`
	Home         TeamScore `json:"homeTeam"`
	Away         TeamScore `json:"awayTeam"`
}

// HasTeam reports whether either side of the game matches the tricode.
func (g Game) HasTeam(tricode string) bool {
	return tricode != "" && (g.Home.Tricode == tricode || g.Away.Tricode == tricode)
}

// Started reports whether the game has begun (a score exists or the status
// code says so). Some feeds report status text only, so the score is the
// fallback signal.
func (g Game) Started() bool {
	return g.Status >= StatusLive || g.Home.Score > 0 || g.Away.Score > 0
}

// Scoreboard is the full replacement snapshot for one date.
type Scoreboard struct {
	Date  string `json:"gameDate"`
	Games []Game `json:"games"`
}
