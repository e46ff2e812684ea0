package app

import (
	"time"

	"github.com/douglasdamasio/nbaterm/internal/services"
)

type (
	// subscribedMsg delivers the service event channel after subscribing.
	subscribedMsg struct {
		ch chan services.ServiceEvent
	}

	// serviceEventMsg wraps one event from the services manager.
	serviceEventMsg struct {
		event services.ServiceEvent
	}

	// autoRefreshMsg fires when the scheduled refresh interval elapses. The
	// generation guards against stale timers after the interval changes.
	autoRefreshMsg struct {
		generation int
	}

	// clockTickMsg drives the live-clock redraw.
	clockTickMsg time.Time
)
