package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/douglasdamasio/nbaterm/internal/services"
)

// subscribeCmd registers with the services manager and hands the channel to
// the update loop.
func subscribeCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ch, _ := mgr.Subscribe()
		return subscribedMsg{ch: ch}
	}
}

// waitForEventCmd blocks on the next service event.
func waitForEventCmd(ch chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return serviceEventMsg{event: event}
	}
}

// autoRefreshCmd schedules the next automatic refresh. A zero interval
// disables scheduling (manual refresh only).
func autoRefreshCmd(generation int, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshMsg{generation: generation}
	})
}

// clockTickCmd drives a once-a-minute redraw so relative labels stay honest.
func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
