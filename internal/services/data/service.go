// Package data is the acquisition service: it binds the upstream client, the
// retrying fetcher and the tiered cache into typed dataset accessors. Every
// read goes through the cache; the network is only touched when freshness
// demands it.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/douglasdamasio/nbaterm/internal/cache"
	"github.com/douglasdamasio/nbaterm/internal/config"
	"github.com/douglasdamasio/nbaterm/internal/logger"
	"github.com/douglasdamasio/nbaterm/internal/models"
	"github.com/douglasdamasio/nbaterm/internal/upstream"
)

// lastResultsLookback bounds the walk-back when searching for the most
// recent date that actually had games.
const lastResultsLookback = 14

// Source is the upstream surface the service fetches from.
type Source interface {
	GamesByDate(ctx context.Context, date string) (*models.Scoreboard, error)
	BoxScore(ctx context.Context, gameID string) (*models.BoxScore, error)
	Standings(ctx context.Context) (*models.Standings, error)
	Leaders(ctx context.Context) (*models.LeagueLeaders, error)
}

// Service serves the four dataset kinds with per-kind TTLs. It is safe for
// concurrent use.
type Service struct {
	source  Source
	fetcher *upstream.Fetcher
	cache   *cache.TieredCache

	mu  sync.RWMutex
	cfg *config.Config

	now func() time.Time
}

// New builds the full acquisition stack from cfg: limiter, fetcher, disk
// tier (nil store when the disk cannot be opened) and tiered cache.
func New(cfg *config.Config, source Source) *Service {
	limiter := upstream.NewLimiter(cfg.MinRequestInterval())
	s := &Service{
		source:  source,
		fetcher: upstream.NewFetcher(limiter),
		cfg:     cfg,
		now:     time.Now,
	}

	disk, err := cache.OpenDiskStore(cfg.CachePath())
	if err != nil {
		logger.Warn("disk cache unavailable, running memory-only", "path", cfg.CachePath(), "error", err)
		disk = nil
	}
	s.cache = cache.New(cache.LoaderFunc(s.load), disk, cfg.OfflineWindow())
	return s
}

// load is the cache's fetch path: one upstream round trip (with retry and
// rate limiting) producing the normalized JSON payload for a key.
func (s *Service) load(ctx context.Context, key cache.Key) ([]byte, error) {
	return s.fetcher.Do(ctx, func(ctx context.Context) ([]byte, error) {
		var v any
		var err error
		switch key.Kind {
		case cache.KindGames:
			v, err = s.source.GamesByDate(ctx, key.Date)
		case cache.KindStandings:
			v, err = s.source.Standings(ctx)
		case cache.KindLeaders:
			v, err = s.source.Leaders(ctx)
		case cache.KindGameDetail:
			v, err = s.source.BoxScore(ctx, key.GameID)
		default:
			return nil, fmt.Errorf("unknown dataset kind %q", key.Kind)
		}
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
}

// Games returns the scoreboard for date (YYYY-MM-DD; empty means today).
func (s *Service) Games(ctx context.Context, date string) (*models.Scoreboard, cache.Freshness, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	var sb models.Scoreboard
	fr, err := s.get(ctx, cache.GamesKey(date), s.config().GamesTTL(), &sb)
	if err != nil {
		return nil, fr, err
	}
	return &sb, fr, nil
}

// Standings returns the conference standings snapshot.
func (s *Service) Standings(ctx context.Context) (*models.Standings, cache.Freshness, error) {
	var st models.Standings
	fr, err := s.get(ctx, cache.StandingsKey(), s.config().StandingsTTL(), &st)
	if err != nil {
		return nil, fr, err
	}
	return &st, fr, nil
}

// Leaders returns the league leaders snapshot.
func (s *Service) Leaders(ctx context.Context) (*models.LeagueLeaders, cache.Freshness, error) {
	var ll models.LeagueLeaders
	fr, err := s.get(ctx, cache.LeadersKey(), s.config().LeadersTTL(), &ll)
	if err != nil {
		return nil, fr, err
	}
	return &ll, fr, nil
}

// BoxScore returns the detail snapshot for one game.
func (s *Service) BoxScore(ctx context.Context, gameID string) (*models.BoxScore, cache.Freshness, error) {
	var bs models.BoxScore
	fr, err := s.get(ctx, cache.GameDetailKey(gameID), s.config().BoxScoreTTL(), &bs)
	if err != nil {
		return nil, fr, err
	}
	return &bs, fr, nil
}

// LastResults walks back from yesterday to the most recent date with games,
// up to two weeks. Days that fail to fetch are skipped, not fatal.
func (s *Service) LastResults(ctx context.Context) (string, *models.Scoreboard, cache.Freshness, error) {
	var lastErr error
	for i := 1; i <= lastResultsLookback; i++ {
		date := s.now().AddDate(0, 0, -i).Format("2006-01-02")
		sb, fr, err := s.Games(ctx, date)
		if err != nil {
			lastErr = err
			continue
		}
		if len(sb.Games) > 0 {
			return date, sb, fr, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no games found in the last %d days", lastResultsLookback)
	}
	return "", nil, cache.Expired, lastErr
}

// Invalidate forces a refetch on the next read of the dataset.
func (s *Service) Invalidate(key cache.Key) {
	s.cache.Invalidate(key)
}

// InvalidateGames forces a refetch of the scoreboard for date.
func (s *Service) InvalidateGames(date string) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	s.cache.Invalidate(cache.GamesKey(date))
}

// CacheLen reports how many datasets the memory tier currently holds.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}

// SetConfig swaps the config used for TTL lookups (live reload).
func (s *Service) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *Service) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Service) get(ctx context.Context, key cache.Key, ttl time.Duration, out any) (cache.Freshness, error) {
	payload, fr, err := s.cache.Get(ctx, key, ttl)
	if err != nil {
		return fr, err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		// A cached payload that no longer decodes is dropped and refetched
		// on the next read.
		s.cache.Invalidate(key)
		return cache.Expired, fmt.Errorf("corrupt cached payload for %s: %w", key, err)
	}
	return fr, nil
}
