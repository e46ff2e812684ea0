package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/douglasdamasio/nbaterm/internal/models"
)

func testScoreboard() *models.Scoreboard {
	return &models.Scoreboard{
		Date: "2025-01-10",
		Games: []models.Game{
			{
				ID: "0022400501", Status: models.StatusFinal, StatusText: "Final",
				Away: models.TeamScore{Tricode: "LAL", Score: 101},
				Home: models.TeamScore{Tricode: "BOS", Score: 112},
			},
			{
				ID: "0022400502", Status: models.StatusScheduled, StatusText: "9:00 pm ET",
				Away: models.TeamScore{Tricode: "DEN"},
				Home: models.TeamScore{Tricode: "GSW"},
			},
		},
	}
}

func TestGamesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Games(&buf, testScoreboard(), FormatJSON); err != nil {
		t.Fatalf("Games() error = %v", err)
	}

	var decoded models.Scoreboard
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Date != "2025-01-10" || len(decoded.Games) != 2 {
		t.Errorf("round trip = %s/%d games", decoded.Date, len(decoded.Games))
	}
}

func TestGamesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Games(&buf, testScoreboard(), FormatCSV); err != nil {
		t.Fatalf("Games() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "date,game_id,status,clock,away,away_score,home,home_score" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-01-10,0022400501,final,,LAL,101,BOS,112" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestStandingsCSV(t *testing.T) {
	st := &models.Standings{
		East: []models.StandingRow{
			{Rank: 1, TeamCity: "Boston", TeamName: "Celtics", Tricode: "BOS", Wins: 30, Losses: 10, WinPct: 0.75},
		},
		West: []models.StandingRow{
			{Rank: 1, TeamCity: "Oklahoma City", TeamName: "Thunder", Tricode: "OKC", Wins: 32, Losses: 8, WinPct: 0.8},
		},
	}

	var buf bytes.Buffer
	if err := Standings(&buf, st, FormatCSV); err != nil {
		t.Fatalf("Standings() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if lines[1] != "East,1,Boston Celtics,BOS,30,10,0.750" {
		t.Errorf("east row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "West,1,Oklahoma City Thunder") {
		t.Errorf("west row = %q", lines[2])
	}
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Games(&buf, testScoreboard(), "xml"); err == nil {
		t.Error("Games(xml) error = nil, want unknown format error")
	}
	if err := Standings(&buf, &models.Standings{}, "yaml"); err == nil {
		t.Error("Standings(yaml) error = nil, want unknown format error")
	}
}
