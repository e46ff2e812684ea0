package ui

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/ui/styles"
)

// BoxScoreView is the input to the box score renderer.
type BoxScoreView struct {
	Box   *models.BoxScore
	Stale bool
	Err   error
	Width int
}

// RenderBoxScore renders the quarter table, the margin chart and both teams'
// player lines.
func RenderBoxScore(v BoxScoreView) string {
	var b strings.Builder

	if v.Err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("could not load box score: %v", v.Err)))
		b.WriteString("\n")
		b.WriteString(styles.SubtleText.Render("press r to retry, esc to go back"))
		return b.String()
	}
	if v.Box == nil {
		return styles.SubtleText.Render("loading box score...")
	}

	box := v.Box
	b.WriteString(styles.Title.Render(fmt.Sprintf("%s %d : %d %s",
		box.Away.Tricode, box.Away.Score, box.Home.Score, box.Home.Tricode)))
	if box.StatusText != "" {
		b.WriteString("  ")
		b.WriteString(styles.SubtleText.Render(box.StatusText))
	}
	b.WriteString("\n")
	if v.Stale {
		b.WriteString(styles.OfflineBanner.Render("offline — showing cached data"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	quarters := models.BuildQuarterScores(box.Away, box.Home)
	if quarters != nil {
		b.WriteString(renderQuarterTable(box, quarters))
		b.WriteString("\n")
		if chart := renderMarginChart(box.Home.Tricode, quarters); chart != "" {
			b.WriteString(chart)
			b.WriteString("\n\n")
		}
	}

	b.WriteString(renderTeamLines(box.Away))
	b.WriteString("\n")
	b.WriteString(renderTeamLines(box.Home))
	b.WriteString(styles.SubtleText.Render("esc back · r refresh"))
	return b.String()
}

func renderQuarterTable(box *models.BoxScore, q *models.QuarterScores) string {
	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(fmt.Sprintf("%-5s", "")))
	for _, h := range q.Headers {
		b.WriteString(styles.TableHeader.Render(fmt.Sprintf("%6s", h)))
	}
	b.WriteString("\n")
	for _, row := range []struct {
		tricode string
		scores  []int
	}{{box.Away.Tricode, q.Away}, {box.Home.Tricode, q.Home}} {
		b.WriteString(fmt.Sprintf("%-5s", row.tricode))
		for _, s := range row.scores {
			b.WriteString(fmt.Sprintf("%6d", s))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMarginChart plots the home team's cumulative margin per period.
// Needs at least two points to be worth drawing.
func renderMarginChart(homeTricode string, q *models.QuarterScores) string {
	series := q.MarginSeries()
	if len(series) < 2 {
		return ""
	}
	chart := asciigraph.Plot(series,
		asciigraph.Height(5),
		asciigraph.Caption(fmt.Sprintf("%s margin by period", homeTricode)))
	return styles.SubtleText.Render(chart)
}

func renderTeamLines(team models.BoxTeam) string {
	var b strings.Builder
	b.WriteString(styles.Bold.Render(team.Tricode))
	b.WriteString("\n")
	if len(team.Players) == 0 {
		b.WriteString(styles.SubtleText.Render("no player stats yet"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.TableHeader.Render(fmt.Sprintf("%-22s %3s %4s %4s %4s %4s %4s %5s",
		"Player", "Pos", "Min", "Pts", "Reb", "Ast", "+/-", "")))
	b.WriteString("\n")
	for _, p := range team.Players {
		flag := ""
		if p.IsTripleDouble() {
			flag = "TD"
		}
		line := fmt.Sprintf("%-22s %3s %4s %4d %4d %4d %+4d %5s",
			clip(p.Name, 22), p.Position, formatMinutes(p.Minutes),
			p.Points, p.Rebounds, p.Assists, p.PlusMinus, flag)
		if flag != "" {
			line = styles.Favorite.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// formatMinutes turns the upstream "PT36M" shape into plain minutes.
func formatMinutes(m string) string {
	m = strings.TrimPrefix(m, "PT")
	if i := strings.IndexByte(m, 'M'); i >= 0 {
		mins := strings.TrimLeft(m[:i], "0")
		if mins == "" {
			mins = "0"
		}
		return mins + "m"
	}
	return m
}
