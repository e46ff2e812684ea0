package ui

import (
	"fmt"
	"strings"

	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/ui/styles"
)

// LeadersView is the input to the leaders tab renderer.
type LeadersView struct {
	Leaders *models.LeagueLeaders
	Stale   bool
	Err     error
}

// RenderLeaders renders the per-category top-3 lists.
func RenderLeaders(v LeadersView) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("League Leaders"))
	b.WriteString("\n")
	if v.Stale {
		b.WriteString(styles.OfflineBanner.Render("offline — showing cached data"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.Err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("could not load leaders: %v", v.Err)))
		return b.String()
	}
	if v.Leaders == nil || v.Leaders.Empty() {
		b.WriteString(styles.SubtleText.Render("no leader data"))
		return b.String()
	}

	b.WriteString(leaderCategory("Points per game", v.Leaders.Points, "%.1f"))
	b.WriteString(leaderCategory("Rebounds per game", v.Leaders.Rebounds, "%.1f"))
	b.WriteString(leaderCategory("Assists per game", v.Leaders.Assists, "%.1f"))
	b.WriteString(leaderCategory("Triple-doubles", v.Leaders.TripleDoubles, "%.0f"))
	return b.String()
}

func leaderCategory(title string, entries []models.LeaderEntry, valueFmt string) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Bold.Render(title))
	b.WriteString("\n")
	for i, e := range entries {
		value := fmt.Sprintf(valueFmt, e.Value)
		b.WriteString(fmt.Sprintf(" %d. %-24s %-4s %6s\n", i+1, clip(e.Player, 24), e.Team, value))
	}
	b.WriteString("\n")
	return b.String()
}
