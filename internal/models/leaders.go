package models

// LeaderEntry is one player's line in a statistical leaders category.
type LeaderEntry struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Value  float64 `json:"value"`
}

// LeagueLeaders groups the top players per category. TripleDoubles carries
// season triple-double counts rather than a per-game average.
type LeagueLeaders struct {
	Points        []LeaderEntry `json:"pts"`
	Rebounds      []LeaderEntry `json:"reb"`
	Assists       []LeaderEntry `json:"ast"`
	TripleDoubles []LeaderEntry `json:"tdbl"`
}

// Empty reports whether no leader data is present.
func (l LeagueLeaders) Empty() bool {
	return len(l.Points) == 0 && len(l.Rebounds) == 0 &&
		len(l.Assists) == 0 && len(l.TripleDoubles) == 0
}
