// Package config loads and persists the application configuration: a JSON
// file under the user config dir, with .env/environment overrides layered on
// top. Defaults are written on first run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/douglasdamasio/nbaterm/internal/models"
)

// Default values
const (
	defaultGamesTTL      = 90 * time.Second
	defaultStandingsTTL  = time.Hour
	defaultLeadersTTL    = time.Hour
	defaultBoxScoreTTL   = 5 * time.Minute
	defaultOfflineWindow = 24 * time.Hour
	defaultMinInterval   = 600 * time.Millisecond
)

// RefreshIntervals are the selectable fixed refresh intervals, in seconds.
// Zero means manual refresh only.
var RefreshIntervals = []int{10, 15, 30, 60, 120, 0}

// Config holds the application configuration. Durations are stored in the
// JSON file as integer seconds (milliseconds for the request interval) to
// keep the file hand-editable.
type Config struct {
	FavoriteTeam         string `json:"favorite_team"`
	RefreshMode          string `json:"refresh_mode"`     // fixed | auto
	RefreshIntervalSecs  int    `json:"refresh_interval"` // 0 = manual only
	GameSort             string `json:"game_sort"`        // time | favorite_first
	LastGameDate         string `json:"last_game_date,omitempty"`
	GamesTTLSecs         int    `json:"games_ttl"`
	StandingsTTLSecs     int    `json:"standings_ttl"`
	LeadersTTLSecs       int    `json:"leaders_ttl"`
	BoxScoreTTLSecs      int    `json:"boxscore_ttl"`
	OfflineWindowSecs    int    `json:"offline_window"`
	MinRequestIntervalMS int    `json:"min_request_interval_ms"`
	CacheDir             string `json:"cache_dir,omitempty"`

	path string
}

// Default returns the configuration the app ships with.
func Default() *Config {
	return &Config{
		RefreshMode:          "auto",
		RefreshIntervalSecs:  30,
		GameSort:             "time",
		GamesTTLSecs:         int(defaultGamesTTL.Seconds()),
		StandingsTTLSecs:     int(defaultStandingsTTL.Seconds()),
		LeadersTTLSecs:       int(defaultLeadersTTL.Seconds()),
		BoxScoreTTLSecs:      int(defaultBoxScoreTTL.Seconds()),
		OfflineWindowSecs:    int(defaultOfflineWindow.Seconds()),
		MinRequestIntervalMS: int(defaultMinInterval.Milliseconds()),
	}
}

// Dir returns the config directory (~/.config/nbaterm, or the XDG override).
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nbaterm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "nbaterm")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the config at path (DefaultPath when empty), writing defaults
// on first run. Invalid fields are reset to defaults rather than rejected,
// then .env/environment overrides are applied on top.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	for _, envPath := range envPaths() {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.normalize()
	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config back to its file atomically (write + rename).
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o640); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// normalize resets out-of-range fields to their defaults.
func (c *Config) normalize() {
	def := Default()
	c.FavoriteTeam = strings.ToUpper(strings.TrimSpace(c.FavoriteTeam))
	if c.FavoriteTeam != "" && !models.ValidTricode(c.FavoriteTeam) {
		// An unknown tricode would silently match nothing.
		c.FavoriteTeam = ""
	}
	if c.RefreshMode != "fixed" && c.RefreshMode != "auto" {
		c.RefreshMode = def.RefreshMode
	}
	if !slices.Contains(RefreshIntervals, c.RefreshIntervalSecs) {
		c.RefreshIntervalSecs = def.RefreshIntervalSecs
	}
	if c.GameSort != "time" && c.GameSort != "favorite_first" {
		c.GameSort = def.GameSort
	}
	if c.GamesTTLSecs <= 0 {
		c.GamesTTLSecs = def.GamesTTLSecs
	}
	if c.StandingsTTLSecs <= 0 {
		c.StandingsTTLSecs = def.StandingsTTLSecs
	}
	if c.LeadersTTLSecs <= 0 {
		c.LeadersTTLSecs = def.LeadersTTLSecs
	}
	if c.BoxScoreTTLSecs <= 0 {
		c.BoxScoreTTLSecs = def.BoxScoreTTLSecs
	}
	if c.OfflineWindowSecs <= 0 {
		c.OfflineWindowSecs = def.OfflineWindowSecs
	}
	if c.MinRequestIntervalMS <= 0 {
		c.MinRequestIntervalMS = def.MinRequestIntervalMS
	}
}

// applyEnv layers environment overrides over the file values.
func (c *Config) applyEnv() {
	c.FavoriteTeam = getEnvString("NBATERM_FAVORITE_TEAM", c.FavoriteTeam)
	c.RefreshMode = getEnvString("NBATERM_REFRESH_MODE", c.RefreshMode)
	c.RefreshIntervalSecs = getEnvInt("NBATERM_REFRESH_INTERVAL", c.RefreshIntervalSecs)
	c.CacheDir = getEnvString("NBATERM_CACHE_DIR", c.CacheDir)
	c.MinRequestIntervalMS = getEnvInt("NBATERM_MIN_REQUEST_INTERVAL_MS", c.MinRequestIntervalMS)
	c.normalize()
}

// Duration accessors used by the rest of the app.

func (c *Config) GamesTTL() time.Duration     { return time.Duration(c.GamesTTLSecs) * time.Second }
func (c *Config) StandingsTTL() time.Duration { return time.Duration(c.StandingsTTLSecs) * time.Second }
func (c *Config) LeadersTTL() time.Duration   { return time.Duration(c.LeadersTTLSecs) * time.Second }
func (c *Config) BoxScoreTTL() time.Duration  { return time.Duration(c.BoxScoreTTLSecs) * time.Second }
func (c *Config) OfflineWindow() time.Duration {
	return time.Duration(c.OfflineWindowSecs) * time.Second
}
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSecs) * time.Second
}
func (c *Config) MinRequestInterval() time.Duration {
	return time.Duration(c.MinRequestIntervalMS) * time.Millisecond
}

// CachePath returns the SQLite cache file location.
func (c *Config) CachePath() string {
	if c.CacheDir != "" {
		return filepath.Join(c.CacheDir, "cache.db")
	}
	return filepath.Join(Dir(), "cache.db")
}

// envPaths returns the locations checked for a .env file, most specific
// first.
func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	paths = append(paths, filepath.Join(Dir(), ".env"))
	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
