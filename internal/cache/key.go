// Package cache implements the tiered dataset cache: an in-memory tier over
// a SQLite disk tier, with TTL freshness and a stale-but-usable offline
// fallback window. It is the only path between the UI and the network.
package cache

// Kind identifies a cacheable dataset family.
type Kind string

const (
	KindGames      Kind = "games"
	KindStandings  Kind = "standings"
	KindLeaders    Kind = "leaders"
	KindGameDetail Kind = "game-detail"
)

// Key identifies one cacheable query. Keys are comparable values: two keys
// are equal iff kind and all parameters match.
type Key struct {
	Kind   Kind
	Date   string // games
	GameID string // game-detail
}

// GamesKey is the day scoreboard for an ISO date.
func GamesKey(date string) Key { return Key{Kind: KindGames, Date: date} }

// StandingsKey is the league standings snapshot.
func StandingsKey() Key { return Key{Kind: KindStandings} }

// LeadersKey is the league leaders snapshot.
func LeadersKey() Key { return Key{Kind: KindLeaders} }

// GameDetailKey is the box score for one game.
func GameDetailKey(gameID string) Key { return Key{Kind: KindGameDetail, GameID: gameID} }

// String renders the key for disk rows and singleflight grouping.
func (k Key) String() string {
	switch k.Kind {
	case KindGames:
		return string(k.Kind) + ":" + k.Date
	case KindGameDetail:
		return string(k.Kind) + ":" + k.GameID
	default:
		return string(k.Kind)
	}
}
