package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/douglasdamasio/nbaterm/internal/models"
)

// Default endpoint roots. The live CDN serves today's scoreboard and box
// scores; the stats host serves dated scoreboards, standings and leaders.
const (
	defaultLiveBase  = "https://cdn.nba.com/static/json/liveData"
	defaultStatsBase = "https://stats.nba.com/stats"

	defaultRequestTimeout = 10 * time.Second
)

// Client fetches the four dataset operations from the upstream service. It
// performs no caching, rate limiting or retrying; the Fetcher and TieredCache
// wrap it.
type Client struct {
	httpClient *http.Client
	liveBase   string
	statsBase  string
}

// NewClient creates a client with the default endpoints and request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		liveBase:   defaultLiveBase,
		statsBase:  defaultStatsBase,
	}
}

// getJSON issues a GET and decodes the body into out, mapping failures onto
// the transient/non-transient taxonomy.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &NonTransientError{Err: err}
	}
	// The stats host rejects requests without browser-looking headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransientError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errorFromStatus(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NonTransientError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// GamesByDate fetches the scoreboard snapshot for date (YYYY-MM-DD). An
// empty date or today's date uses the live CDN endpoint; other dates go
// through the dated scoreboard.
func (c *Client) GamesByDate(ctx context.Context, date string) (*models.Scoreboard, error) {
	today := time.Now().Format("2006-01-02")
	var rawURL string
	if date == "" || date == today {
		rawURL = c.liveBase + "/scoreboard/todaysScoreboard_00.json"
	} else {
		q := url.Values{"GameDate": {date}, "LeagueID": {"00"}}
		rawURL = c.statsBase + "/scoreboardv3?" + q.Encode()
	}

	var resp struct {
		Scoreboard models.Scoreboard `json:"scoreboard"`
	}
	if err := c.getJSON(ctx, rawURL, &resp); err != nil {
		return nil, err
	}
	if resp.Scoreboard.Date == "" {
		resp.Scoreboard.Date = date
	}
	return &resp.Scoreboard, nil
}

// BoxScore fetches the single-game detail snapshot from the live CDN.
func (c *Client) BoxScore(ctx context.Context, gameID string) (*models.BoxScore, error) {
	if gameID == "" {
		return nil, &NonTransientError{Err: fmt.Errorf("empty game id")}
	}

	var resp struct {
		Game struct {
			GameID     string      `json:"gameId"`
			StatusText string      `json:"gameStatusText"`
			Home       rawBoxTeam  `json:"homeTeam"`
			Away       rawBoxTeam  `json:"awayTeam"`
		} `json:"game"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/boxscore/boxscore_%s.json", c.liveBase, gameID), &resp); err != nil {
		return nil, err
	}

	return &models.BoxScore{
		GameID:     resp.Game.GameID,
		StatusText: resp.Game.StatusText,
		Home:       resp.Game.Home.toModel(),
		Away:       resp.Game.Away.toModel(),
	}, nil
}

// rawBoxTeam matches the live box score shape, where player stats live under
// a nested statistics object.
type rawBoxTeam struct {
	Tricode string               `json:"teamTricode"`
	Name    string               `json:"teamName"`
	Score   int                  `json:"score"`
	Periods []models.PeriodScore `json:"periods"`
	Players []struct {
		Name       string `json:"name"`
		Position   string `json:"position"`
		Statistics struct {
			Minutes   string  `json:"minutes"`
			Points    int     `json:"points"`
			Rebounds  int     `json:"reboundsTotal"`
			Assists   int     `json:"assists"`
			Steals    int     `json:"steals"`
			Blocks    int     `json:"blocks"`
			Turnovers int     `json:"turnovers"`
			Fouls     int     `json:"foulsPersonal"`
			PlusMinus float64 `json:"plusMinusPoints"`
			FGM       int     `json:"fieldGoalsMade"`
			FGA       int     `json:"fieldGoalsAttempted"`
			TPM       int     `json:"threePointersMade"`
			TPA       int     `json:"threePointersAttempted"`
			FTM       int     `json:"freeThrowsMade"`
			FTA       int     `json:"freeThrowsAttempted"`
		} `json:"statistics"`
	} `json:"players"`
}

func (rt rawBoxTeam) toModel() models.BoxTeam {
	team := models.BoxTeam{
		Tricode: rt.Tricode,
		Name:    rt.Name,
		Score:   rt.Score,
		Periods: rt.Periods,
	}
	for _, p := range rt.Players {
		st := p.Statistics
		team.Players = append(team.Players, models.PlayerLine{
			Name:      p.Name,
			Position:  p.Position,
			Minutes:   st.Minutes,
			Points:    st.Points,
			Rebounds:  st.Rebounds,
			Assists:   st.Assists,
			Steals:    st.Steals,
			Blocks:    st.Blocks,
			Turnovers: st.Turnovers,
			Fouls:     st.Fouls,
			PlusMinus: int(st.PlusMinus),
			FGM:       st.FGM,
			FGA:       st.FGA,
			TPM:       st.TPM,
			TPA:       st.TPA,
			FTM:       st.FTM,
			FTA:       st.FTA,
		})
	}
	return team
}

// Standings fetches conference standings, sorted by playoff rank.
func (c *Client) Standings(ctx context.Context) (*models.Standings, error) {
	q := url.Values{"LeagueID": {"00"}, "SeasonType": {"Regular Season"}}
	table, err := c.getResultSet(ctx, c.statsBase+"/leaguestandingsv3?"+q.Encode(), "Standings")
	if err != nil {
		return nil, err
	}

	standings := &models.Standings{}
	for _, row := range table.rows {
		entry := models.StandingRow{
			Rank:       table.intAt(row, "PlayoffRank"),
			TeamCity:   table.stringAt(row, "TeamCity"),
			TeamName:   table.stringAt(row, "TeamName"),
			Conference: table.stringAt(row, "Conference"),
			Wins:       table.intAt(row, "WINS"),
			Losses:     table.intAt(row, "LOSSES"),
			WinPct:     table.floatAt(row, "WinPCT"),
		}
		entry.Tricode = models.TricodeFromTeam(entry.DisplayName())
		switch entry.Conference {
		case "East":
			standings.East = append(standings.East, entry)
		case "West":
			standings.West = append(standings.West, entry)
		}
	}
	sort.Slice(standings.East, func(i, j int) bool { return standings.East[i].Rank < standings.East[j].Rank })
	sort.Slice(standings.West, func(i, j int) bool { return standings.West[i].Rank < standings.West[j].Rank })
	return standings, nil
}

// leaderCategories maps the leaders request parameter to the value column.
var leaderCategories = []struct{ param, column string }{
	{"PTS", "PTS"},
	{"REB", "REB"},
	{"AST", "AST"},
}

// Leaders fetches the top three players per statistical category plus season
// triple-double counts. A failed category leaves that slice empty rather than
// failing the whole snapshot.
func (c *Client) Leaders(ctx context.Context) (*models.LeagueLeaders, error) {
	leaders := &models.LeagueLeaders{}
	var firstErr error

	for _, cat := range leaderCategories {
		q := url.Values{
			"LeagueID":     {"00"},
			"PerMode":      {"PerGame"},
			"Scope":        {"S"},
			"SeasonType":   {"Regular Season"},
			"StatCategory": {cat.param},
		}
		table, err := c.getResultSet(ctx, c.statsBase+"/leagueleaders?"+q.Encode(), "LeagueLeaders")
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		entries := make([]models.LeaderEntry, 0, 3)
		for _, row := range table.rows {
			if len(entries) == 3 {
				break
			}
			entries = append(entries, models.LeaderEntry{
				Player: table.stringAt(row, "PLAYER"),
				Team:   table.stringAt(row, "TEAM"),
				Value:  table.floatAt(row, cat.column),
			})
		}
		switch cat.column {
		case "PTS":
			leaders.Points = entries
		case "REB":
			leaders.Rebounds = entries
		case "AST":
			leaders.Assists = entries
		}
	}

	if tdbl, err := c.tripleDoubleLeaders(ctx); err == nil {
		leaders.TripleDoubles = tdbl
	}

	if leaders.Empty() && firstErr != nil {
		return nil, firstErr
	}
	return leaders, nil
}

// tripleDoubleLeaders counts triple-doubles per player from the season game
// log and returns the top three.
func (c *Client) tripleDoubleLeaders(ctx context.Context) ([]models.LeaderEntry, error) {
	q := url.Values{
		"LeagueID":       {"00"},
		"PlayerOrTeam":   {"P"},
		"SeasonType":     {"Regular Season"},
		"Sorter":         {"DATE"},
		"Direction":      {"DESC"},
	}
	table, err := c.getResultSet(ctx, c.statsBase+"/leaguegamelog?"+q.Encode(), "LeagueGameLog")
	if err != nil {
		return nil, err
	}

	type tdKey struct{ player, team string }
	counts := map[tdKey]int{}
	for _, row := range table.rows {
		line := models.PlayerLine{
			Points:   table.intAt(row, "PTS"),
			Rebounds: table.intAt(row, "REB"),
			Assists:  table.intAt(row, "AST"),
			Steals:   table.intAt(row, "STL"),
			Blocks:   table.intAt(row, "BLK"),
		}
		if line.IsTripleDouble() {
			counts[tdKey{table.stringAt(row, "PLAYER_NAME"), table.stringAt(row, "TEAM_ABBREVIATION")}]++
		}
	}

	entries := make([]models.LeaderEntry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, models.LeaderEntry{Player: k.player, Team: k.team, Value: float64(n)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Player < entries[j].Player
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}
	return entries, nil
}

// resultTable is a decoded stats-host result set: named columns over rows of
// mixed string/number values.
type resultTable struct {
	index map[string]int
	rows  [][]any
}

// getResultSet fetches a stats-host response and extracts the named result
// set (or the first one when name is not found).
func (c *Client) getResultSet(ctx context.Context, rawURL, name string) (*resultTable, error) {
	var resp struct {
		ResultSets []struct {
			Name    string   `json:"name"`
			Headers []string `json:"headers"`
			RowSet  [][]any  `json:"rowSet"`
		} `json:"resultSets"`
	}
	if err := c.getJSON(ctx, rawURL, &resp); err != nil {
		return nil, err
	}
	if len(resp.ResultSets) == 0 {
		return nil, &NonTransientError{Err: fmt.Errorf("response has no result sets")}
	}

	set := resp.ResultSets[0]
	for _, rs := range resp.ResultSets {
		if rs.Name == name {
			set = rs
			break
		}
	}

	index := make(map[string]int, len(set.Headers))
	for i, h := range set.Headers {
		index[h] = i
	}
	return &resultTable{index: index, rows: set.RowSet}, nil
}

func (t *resultTable) at(row []any, column string) any {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

func (t *resultTable) stringAt(row []any, column string) string {
	if v, ok := t.at(row, column).(string); ok {
		return v
	}
	return ""
}

func (t *resultTable) floatAt(row []any, column string) float64 {
	switch v := t.at(row, column).(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func (t *resultTable) intAt(row []any, column string) int {
	return int(t.floatAt(row, column))
}
