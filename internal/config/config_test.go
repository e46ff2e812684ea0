package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RefreshMode != "auto" || cfg.RefreshIntervalSecs != 30 {
		t.Errorf("defaults = %s/%d, want auto/30", cfg.RefreshMode, cfg.RefreshIntervalSecs)
	}
	if cfg.GamesTTL() != 90*time.Second || cfg.OfflineWindow() != 24*time.Hour {
		t.Errorf("TTLs = %v/%v, want 90s/24h", cfg.GamesTTL(), cfg.OfflineWindow())
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := map[string]any{
		"favorite_team":    "LAL",
		"refresh_mode":     "fixed",
		"refresh_interval": 60,
		"game_sort":        "favorite_first",
		"games_ttl":        120,
	}
	data, _ := json.Marshal(content)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FavoriteTeam != "LAL" || cfg.RefreshMode != "fixed" || cfg.RefreshIntervalSecs != 60 {
		t.Errorf("loaded = %s/%s/%d", cfg.FavoriteTeam, cfg.RefreshMode, cfg.RefreshIntervalSecs)
	}
	if cfg.GamesTTL() != 2*time.Minute {
		t.Errorf("games TTL = %v, want 2m", cfg.GamesTTL())
	}
	// Fields missing from the file keep defaults.
	if cfg.StandingsTTL() != time.Hour {
		t.Errorf("standings TTL = %v, want 1h", cfg.StandingsTTL())
	}
}

func TestLoadNormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"refresh_mode": "sometimes", "refresh_interval": 7, "game_sort": "random", "games_ttl": -5}`)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RefreshMode != "auto" || cfg.RefreshIntervalSecs != 30 || cfg.GameSort != "time" {
		t.Errorf("normalized = %s/%d/%s, want auto/30/time", cfg.RefreshMode, cfg.RefreshIntervalSecs, cfg.GameSort)
	}
	if cfg.GamesTTLSecs != 90 {
		t.Errorf("games_ttl = %d, want 90", cfg.GamesTTLSecs)
	}
}

func TestNormalizeFavoriteTeam(t *testing.T) {
	tests := []struct{ in, want string }{
		{"lal", "LAL"},
		{" bos ", "BOS"},
		{"XYZ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.FavoriteTeam = tt.in
		cfg.normalize()
		if cfg.FavoriteTeam != tt.want {
			t.Errorf("normalize(%q) favorite = %q, want %q", tt.in, cfg.FavoriteTeam, tt.want)
		}
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o640); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil for malformed file")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("NBATERM_FAVORITE_TEAM", "BOS")
	t.Setenv("NBATERM_REFRESH_INTERVAL", "120")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FavoriteTeam != "BOS" {
		t.Errorf("favorite = %q, want BOS", cfg.FavoriteTeam)
	}
	if cfg.RefreshIntervalSecs != 120 {
		t.Errorf("interval = %d, want 120", cfg.RefreshIntervalSecs)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg.FavoriteTeam = "DEN"
	cfg.LastGameDate = "2025-01-10"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if again.FavoriteTeam != "DEN" || again.LastGameDate != "2025-01-10" {
		t.Errorf("round trip = %s/%s", again.FavoriteTeam, again.LastGameDate)
	}
}

func TestWatcherDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	cfg.FavoriteTeam = "MIA"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case reloaded := <-w.Events():
		if reloaded.FavoriteTeam != "MIA" {
			t.Errorf("reloaded favorite = %q, want MIA", reloaded.FavoriteTeam)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload event within 2s")
	}
}
