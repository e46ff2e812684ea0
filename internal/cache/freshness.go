package cache

import "time"

// Freshness is the derived age state of a cache entry. It is computed on
// every read, never stored. Entries move Fresh -> StaleUsable -> Expired as
// they age; only the first two states are ever surfaced to callers.
type Freshness int

const (
	// Fresh means age <= ttl: served without touching the network.
	Fresh Freshness = iota
	// StaleUsable means ttl < age <= offline window: served only as a
	// degraded fallback when a refresh fails.
	StaleUsable
	// Expired means age > offline window: never surfaced.
	Expired
)

// String returns the display name of the state.
func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case StaleUsable:
		return "stale"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// classifyAge places an entry age on the freshness state machine.
func classifyAge(age, ttl, offlineWindow time.Duration) Freshness {
	switch {
	case age <= ttl:
		return Fresh
	case age <= offlineWindow:
		return StaleUsable
	default:
		return Expired
	}
}
