// Package ui renders tab content from already-fetched data. Every view is a
// pure function of its inputs; fetching and key handling live in the app
// package.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
	"github.com/douglasdamasio/nbaterm/internal/ui/styles"
)

// GamesView is the input to the games tab renderer.
type GamesView struct {
	Date         string
	States       []scoreboard.GameState
	Stale        bool
	Err          error
	FavoriteOnly bool
	Favorite     string
	Width        int
}

// RenderGames renders the day's games list.
func RenderGames(v GamesView) string {
	var b strings.Builder

	title := fmt.Sprintf("Games — %s", v.Date)
	if v.FavoriteOnly && v.Favorite != "" {
		title += fmt.Sprintf("  [%s only]", v.Favorite)
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	if v.Stale {
		b.WriteString(styles.OfflineBanner.Render("offline — showing cached data"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.Err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("could not load games: %v", v.Err)))
		b.WriteString("\n")
		b.WriteString(styles.SubtleText.Render("press r to retry"))
		return b.String()
	}
	if len(v.States) == 0 {
		b.WriteString(styles.SubtleText.Render("no games on this date"))
		return b.String()
	}

	for _, st := range v.States {
		b.WriteString(renderGameRow(st, v.Favorite, v.Width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtleText.Render("press a game's key for its box score; , and . change date, d today"))
	return b.String()
}

func renderGameRow(st scoreboard.GameState, favorite string, width int) string {
	hotkey := " "
	if st.Hotkey != 0 {
		hotkey = string(st.Hotkey)
	}

	matchup := fmt.Sprintf("%-3s @ %-3s", st.Game.Away.Tricode, st.Game.Home.Tricode)
	if favorite != "" && st.Game.HasTeam(favorite) {
		matchup = styles.Favorite.Render(matchup)
	}

	var status string
	switch st.Category {
	case scoreboard.Live:
		status = fmt.Sprintf("%3d : %-3d  %s",
			st.AwayScore, st.HomeScore, styles.Live.Render(st.ClockLabel))
	case scoreboard.Final:
		status = fmt.Sprintf("%3d : %-3d  %s",
			st.AwayScore, st.HomeScore, styles.Final.Render("Final"))
	default:
		status = styles.Scheduled.Render(startLabel(st.Game))
	}

	row := fmt.Sprintf(" %s  %s  %s", styles.Hotkey.Render(hotkey), matchup, status)
	if width > 0 {
		row = ansi.Truncate(row, width, "…")
	}
	return row
}

// startLabel renders the scheduled tip-off time, preferring the upstream's
// own status text when present.
func startLabel(g models.Game) string {
	if g.StatusText != "" {
		return g.StatusText
	}
	if g.StartTimeUTC.IsZero() {
		return "scheduled"
	}
	return g.StartTimeUTC.Local().Format("3:04 PM")
}

// RenderTabBar renders the top tab bar with the active tab highlighted.
func RenderTabBar(names []string, active int, width int) string {
	parts := make([]string, 0, len(names)*2)
	for i, name := range names {
		if i > 0 {
			parts = append(parts, styles.TabSeparator.String())
		}
		if i == active {
			parts = append(parts, styles.ActiveTab.Render(name))
		} else {
			parts = append(parts, styles.InactiveTab.Render(name))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if width > 0 {
		bar = ansi.Truncate(bar, width, "")
	}
	return styles.TabBar.Render(bar)
}
