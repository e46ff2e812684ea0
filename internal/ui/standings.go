package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/ui/styles"
)

// StandingsView is the input to the standings tab renderer.
type StandingsView struct {
	Standings *models.Standings
	Stale     bool
	Err       error
	Favorite  string
	Width     int
}

// RenderStandings renders both conference tables side by side when the
// terminal is wide enough, stacked otherwise.
func RenderStandings(v StandingsView) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Standings"))
	b.WriteString("\n")
	if v.Stale {
		b.WriteString(styles.OfflineBanner.Render("offline — showing cached data"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.Err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("could not load standings: %v", v.Err)))
		return b.String()
	}
	if v.Standings == nil || v.Standings.Empty() {
		b.WriteString(styles.SubtleText.Render("no standings data"))
		return b.String()
	}

	east := conferenceTable("East", v.Standings.East, v.Favorite)
	west := conferenceTable("West", v.Standings.West, v.Favorite)
	if v.Width >= 76 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, east, "    ", west))
	} else {
		b.WriteString(east)
		b.WriteString("\n")
		b.WriteString(west)
	}
	return b.String()
}

func conferenceTable(name string, rows []models.StandingRow, favorite string) string {
	var b strings.Builder
	b.WriteString(styles.Bold.Render(name))
	b.WriteString("\n")
	b.WriteString(styles.TableHeader.Render(fmt.Sprintf("%2s  %-22s %3s %3s  %5s", "#", "Team", "W", "L", "Pct")))
	b.WriteString("\n")
	for _, r := range rows {
		line := fmt.Sprintf("%2d  %-22s %3d %3d  %.3f", r.Rank, clip(r.DisplayName(), 22), r.Wins, r.Losses, r.WinPct)
		if favorite != "" && r.Tricode == favorite {
			line = styles.Favorite.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// clip shortens s to n display cells. Width-aware: player and team names
// carry accented runes that byte slicing would split.
func clip(s string, n int) string {
	return ansi.Truncate(s, n, "…")
}
