package models

// StandingRow is one team's line in the conference standings.
type StandingRow struct {
	Rank       int     `json:"rank"`
	TeamCity   string  `json:"teamCity"`
	TeamName   string  `json:"teamName"`
	Tricode    string  `json:"teamTricode"`
	Conference string  `json:"conference"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinPct     float64 `json:"winPct"`
}

// DisplayName returns "City Name" for rendering.
func (r StandingRow) DisplayName() string {
	if r.TeamCity == "" {
		return r.TeamName
	}
	return r.TeamCity + " " + r.TeamName
}

// Standings holds both conferences, each sorted by playoff rank.
type Standings struct {
	East []StandingRow `json:"east"`
	West []StandingRow `json:"west"`
}

// Empty reports whether no standings data is present.
func (s Standings) Empty() bool {
	return len(s.East) == 0 && len(s.West) == 0
}
