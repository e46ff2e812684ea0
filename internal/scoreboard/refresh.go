package scoreboard

import "time"

// Refresh modes.
const (
	RefreshFixed = "fixed"
	RefreshAuto  = "auto"
)

// Auto-mode intervals: poll quickly while games are live, slowly otherwise.
const (
	autoLiveInterval = 30 * time.Second
	autoIdleInterval = 120 * time.Second
)

// NextInterval decides the delay until the next automatic refresh. Fixed
// mode returns the configured interval; zero disables auto-refresh entirely
// (manual refresh stays available). Auto mode polls fast while any game is
// live and slow otherwise.
func NextInterval(mode string, fixed time.Duration, states []GameState) time.Duration {
	if mode == RefreshAuto {
		for _, st := range states {
			if st.Category == Live {
				return autoLiveInterval
			}
		}
		return autoIdleInterval
	}
	return fixed
}
