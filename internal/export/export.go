// Package export serializes already-fetched datasets for the one-shot CLI
// modes. JSON output is the cache's normalized shape; CSV flattens it.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
)

// Formats accepted by the export flags.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Games writes the day's games in the requested format.
func Games(w io.Writer, sb *models.Scoreboard, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, sb)
	case FormatCSV:
		return gamesCSV(w, sb)
	default:
		return fmt.Errorf("unknown export format %q (want json or csv)", format)
	}
}

// Standings writes the conference standings in the requested format.
func Standings(w io.Writer, st *models.Standings, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, st)
	case FormatCSV:
		return standingsCSV(w, st)
	default:
		return fmt.Errorf("unknown export format %q (want json or csv)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func gamesCSV(w io.Writer, sb *models.Scoreboard) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "game_id", "status", "clock", "away", "away_score", "home", "home_score"}); err != nil {
		return err
	}
	for _, st := range scoreboard.Classify(sb.Games) {
		g := st.Game
		row := []string{
			sb.Date,
			g.ID,
			st.Category.String(),
			st.ClockLabel,
			g.Away.Tricode,
			strconv.Itoa(st.AwayScore),
			g.Home.Tricode,
			strconv.Itoa(st.HomeScore),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func standingsCSV(w io.Writer, st *models.Standings) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"conference", "rank", "team", "tricode", "wins", "losses", "win_pct"}); err != nil {
		return err
	}
	for _, rows := range []struct {
		conference string
		rows       []models.StandingRow
	}{{"East", st.East}, {"West", st.West}} {
		for _, r := range rows.rows {
			row := []string{
				rows.conference,
				strconv.Itoa(r.Rank),
				r.DisplayName(),
				r.Tricode,
				strconv.Itoa(r.Wins),
				strconv.Itoa(r.Losses),
				strconv.FormatFloat(r.WinPct, 'f', 3, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
