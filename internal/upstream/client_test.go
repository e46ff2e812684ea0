package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient()
	c.liveBase = srv.URL
	c.statsBase = srv.URL
	return c, srv
}

func TestGamesByDateDatedEndpoint(t *testing.T) {
	var gotPath, gotQuery string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("GameDate")
		_, _ = w.Write([]byte(`{
			"scoreboard": {
				"gameDate": "2025-01-10",
				"games": [
					{"gameId": "0022400501", "gameStatus": 3, "gameStatusText": "Final",
					 "homeTeam": {"teamTricode": "BOS", "score": 112},
					 "awayTeam": {"teamTricode": "LAL", "score": 101}}
				]
			}
		}`))
	}))
	defer srv.Close()

	sb, err := c.GamesByDate(context.Background(), "2025-01-10")
	if err != nil {
		t.Fatalf("GamesByDate() error = %v", err)
	}
	if gotPath != "/scoreboardv3" || gotQuery != "2025-01-10" {
		t.Errorf("request = %s?GameDate=%s, want /scoreboardv3?GameDate=2025-01-10", gotPath, gotQuery)
	}
	if len(sb.Games) != 1 {
		t.Fatalf("games = %d, want 1", len(sb.Games))
	}
	g := sb.Games[0]
	if g.ID != "0022400501" || g.Home.Tricode != "BOS" || g.Home.Score != 112 || g.Away.Score != 101 {
		t.Errorf("unexpected game decode: %+v", g)
	}
}

func TestGetJSONStatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		transient   bool
		rateLimited bool
	}{
		{"TooManyRequests", http.StatusTooManyRequests, true, true},
		{"ServerError", http.StatusBadGateway, true, false},
		{"NotFound", http.StatusNotFound, false, false},
		{"Forbidden", http.StatusForbidden, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := c.GamesByDate(context.Background(), "2025-01-10")
			if err == nil {
				t.Fatal("error = nil, want status error")
			}
			if got := IsTransient(err); got != tt.transient {
				t.Errorf("IsTransient() = %v, want %v", got, tt.transient)
			}
			if got := IsRateLimited(err); got != tt.rateLimited {
				t.Errorf("IsRateLimited() = %v, want %v", got, tt.rateLimited)
			}
		})
	}
}

func TestGetJSONMalformedBodyIsNonTransient(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scoreboard": [not json`))
	}))
	defer srv.Close()

	_, err := c.GamesByDate(context.Background(), "2025-01-10")
	var nte *NonTransientError
	if !errors.As(err, &nte) {
		t.Errorf("error = %v (%T), want *NonTransientError", err, err)
	}
}

func TestStandingsDecodesResultSet(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"resultSets": [{
				"name": "Standings",
				"headers": ["TeamCity", "TeamName", "Conference", "PlayoffRank", "WINS", "LOSSES", "WinPCT"],
				"rowSet": [
					["Boston", "Celtics", "East", 1, 30, 10, 0.75],
					["Oklahoma City", "Thunder", "West", 1, 32, 8, 0.8],
					["New York", "Knicks", "East", 2, 28, 12, 0.7]
				]
			}]
		}`))
	}))
	defer srv.Close()

	st, err := c.Standings(context.Background())
	if err != nil {
		t.Fatalf("Standings() error = %v", err)
	}
	if len(st.East) != 2 || len(st.West) != 1 {
		t.Fatalf("east/west = %d/%d, want 2/1", len(st.East), len(st.West))
	}
	if st.East[0].TeamName != "Celtics" || st.East[0].Rank != 1 || st.East[0].Wins != 30 {
		t.Errorf("east leader = %+v", st.East[0])
	}
	if st.East[0].Tricode != "BOS" {
		t.Errorf("tricode = %q, want BOS", st.East[0].Tricode)
	}
	if st.West[0].WinPct != 0.8 {
		t.Errorf("west pct = %v, want 0.8", st.West[0].WinPct)
	}
}

func TestBoxScoreDecodesPlayers(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boxscore/boxscore_0022400501.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{
			"game": {
				"gameId": "0022400501",
				"gameStatusText": "Final",
				"homeTeam": {
					"teamTricode": "DEN", "score": 120,
					"periods": [{"period": 1, "score": 30}],
					"players": [
						{"name": "Nikola Jokic", "position": "C",
						 "statistics": {"minutes": "PT36M", "points": 25, "reboundsTotal": 14,
						                "assists": 12, "plusMinusPoints": 15.0}}
					]
				},
				"awayTeam": {"teamTricode": "MIN", "score": 110}
			}
		}`))
	}))
	defer srv.Close()

	bs, err := c.BoxScore(context.Background(), "0022400501")
	if err != nil {
		t.Fatalf("BoxScore() error = %v", err)
	}
	if len(bs.Home.Players) != 1 {
		t.Fatalf("home players = %d, want 1", len(bs.Home.Players))
	}
	p := bs.Home.Players[0]
	if p.Name != "Nikola Jokic" || p.Points != 25 || p.PlusMinus != 15 {
		t.Errorf("player decode = %+v", p)
	}
	if !p.IsTripleDouble() {
		t.Error("25/14/12 line should be a triple-double")
	}
}

func TestBoxScoreEmptyID(t *testing.T) {
	c := NewClient()
	_, err := c.BoxScore(context.Background(), "")
	var nte *NonTransientError
	if !errors.As(err, &nte) {
		t.Errorf("error = %v, want *NonTransientError", err)
	}
}
