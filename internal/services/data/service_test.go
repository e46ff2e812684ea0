package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/douglasdamasio/nbaterm/internal/cache"
	"github.com/douglasdamasio/nbaterm/internal/config"
	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/upstream"
)

// fakeSource serves canned responses and records call counts per operation.
type fakeSource struct {
	gamesByDate  map[string]*models.Scoreboard
	gamesErr     error
	standings    *models.Standings
	standingsErr error
	leaders      *models.LeagueLeaders
	boxScore     *models.BoxScore

	gamesCalls     int
	standingsCalls int
}

func (f *fakeSource) GamesByDate(_ context.Context, date string) (*models.Scoreboard, error) {
	f.gamesCalls++
	if f.gamesErr != nil {
		return nil, f.gamesErr
	}
	if sb, ok := f.gamesByDate[date]; ok {
		return sb, nil
	}
	return &models.Scoreboard{Date: date}, nil
}

func (f *fakeSource) Standings(_ context.Context) (*models.Standings, error) {
	f.standingsCalls++
	if f.standingsErr != nil {
		return nil, f.standingsErr
	}
	return f.standings, nil
}

func (f *fakeSource) Leaders(_ context.Context) (*models.LeagueLeaders, error) {
	return f.leaders, nil
}

func (f *fakeSource) BoxScore(_ context.Context, _ string) (*models.BoxScore, error) {
	return f.boxScore, nil
}

func newTestService(src Source) *Service {
	cfg := config.Default()
	s := &Service{
		source:  src,
		fetcher: upstream.NewFetcher(upstream.NewLimiter(time.Nanosecond)),
		cfg:     cfg,
		now:     time.Now,
	}
	s.cache = cache.New(cache.LoaderFunc(s.load), nil, cfg.OfflineWindow())
	return s
}

func TestGamesRoundTrip(t *testing.T) {
	src := &fakeSource{gamesByDate: map[string]*models.Scoreboard{
		"2025-01-10": {Date: "2025-01-10", Games: []models.Game{
			{ID: "001", Status: models.StatusFinal,
				Home: models.TeamScore{Tricode: "BOS", Score: 112},
				Away: models.TeamScore{Tricode: "LAL", Score: 101}},
		}},
	}}
	s := newTestService(src)

	sb, fr, err := s.Games(context.Background(), "2025-01-10")
	if err != nil {
		t.Fatalf("Games() error = %v", err)
	}
	if fr != cache.Fresh {
		t.Errorf("freshness = %v, want fresh", fr)
	}
	if len(sb.Games) != 1 || sb.Games[0].Home.Score != 112 {
		t.Errorf("scoreboard = %+v", sb)
	}

	// Second read inside the TTL is served from cache.
	if _, _, err := s.Games(context.Background(), "2025-01-10"); err != nil {
		t.Fatalf("second Games() error = %v", err)
	}
	if src.gamesCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", src.gamesCalls)
	}
}

func TestDatasetsFailIndependently(t *testing.T) {
	src := &fakeSource{
		gamesByDate:  map[string]*models.Scoreboard{},
		standingsErr: &upstream.NonTransientError{Err: errors.New("rejected")},
	}
	s := newTestService(src)

	if _, _, err := s.Standings(context.Background()); err == nil {
		t.Fatal("Standings() error = nil, want failure")
	}

	// The standings failure must not block the games dataset.
	sb, _, err := s.Games(context.Background(), "2025-01-10")
	if err != nil {
		t.Fatalf("Games() error = %v after standings failure", err)
	}
	if sb.Date != "2025-01-10" {
		t.Errorf("date = %q", sb.Date)
	}
}

func TestLastResultsWalksBack(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{gamesByDate: map[string]*models.Scoreboard{
		"2025-01-07": {Date: "2025-01-07", Games: []models.Game{{ID: "g"}}},
	}}
	s := newTestService(src)
	s.now = func() time.Time { return now }

	date, sb, _, err := s.LastResults(context.Background())
	if err != nil {
		t.Fatalf("LastResults() error = %v", err)
	}
	if date != "2025-01-07" || len(sb.Games) != 1 {
		t.Errorf("LastResults() = (%s, %d games), want 2025-01-07 with 1 game", date, len(sb.Games))
	}
	// Jan 9, 8 and 7 were probed.
	if src.gamesCalls != 3 {
		t.Errorf("upstream calls = %d, want 3", src.gamesCalls)
	}
}

func TestLastResultsNoGames(t *testing.T) {
	src := &fakeSource{gamesByDate: map[string]*models.Scoreboard{}}
	s := newTestService(src)

	if _, _, _, err := s.LastResults(context.Background()); err == nil {
		t.Error("LastResults() error = nil, want no-games failure")
	}
}

func TestInvalidateGamesForcesRefetch(t *testing.T) {
	src := &fakeSource{gamesByDate: map[string]*models.Scoreboard{
		"2025-01-10": {Date: "2025-01-10"},
	}}
	s := newTestService(src)

	if _, _, err := s.Games(context.Background(), "2025-01-10"); err != nil {
		t.Fatal(err)
	}
	s.InvalidateGames("2025-01-10")
	if _, _, err := s.Games(context.Background(), "2025-01-10"); err != nil {
		t.Fatal(err)
	}
	if src.gamesCalls != 2 {
		t.Errorf("upstream calls = %d, want 2 after invalidate", src.gamesCalls)
	}
}

func TestTransientFailureServesStale(t *testing.T) {
	src := &fakeSource{gamesByDate: map[string]*models.Scoreboard{
		"2025-01-10": {Date: "2025-01-10", Games: []models.Game{{ID: "g"}}},
	}}
	s := newTestService(src)

	// Seed, then break the network and force a refetch.
	if _, _, err := s.Games(context.Background(), "2025-01-10"); err != nil {
		t.Fatal(err)
	}
	src.gamesErr = &upstream.NonTransientError{Err: errors.New("down")}
	s.InvalidateGames("2025-01-10")

	sb, fr, err := s.Games(context.Background(), "2025-01-10")
	if err != nil {
		t.Fatalf("Games() error = %v, want stale fallback", err)
	}
	if fr != cache.StaleUsable || len(sb.Games) != 1 {
		t.Errorf("Games() = (%d games, %v), want (1, stale)", len(sb.Games), fr)
	}
}
