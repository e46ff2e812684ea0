package ui

import (
	"fmt"
	"strings"

	"github.com/douglasdamasio/nbaterm/internal/config"
	"github.com/douglasdamasio/nbaterm/internal/ui/styles"
	"github.com/douglasdamasio/nbaterm/internal/version"
)

// InfoView is the input to the info tab renderer.
type InfoView struct {
	Config    *config.Config
	CacheSize int
}

// RenderInfo renders the settings summary and about block.
func RenderInfo(v InfoView) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Info"))
	b.WriteString("\n\n")

	if v.Config != nil {
		cfg := v.Config
		b.WriteString(styles.Bold.Render("Settings"))
		b.WriteString("\n")
		favorite := cfg.FavoriteTeam
		if favorite == "" {
			favorite = "(none)"
		}
		rows := []struct{ label, value string }{
			{"favorite team", favorite},
			{"refresh", refreshLabel(cfg)},
			{"game sort", cfg.GameSort},
			{"games TTL", cfg.GamesTTL().String()},
			{"standings TTL", cfg.StandingsTTL().String()},
			{"offline window", cfg.OfflineWindow().String()},
			{"config file", cfg.Path()},
			{"cache file", cfg.CachePath()},
		}
		for _, r := range rows {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", r.label, r.value))
		}
		b.WriteString(styles.SubtleText.Render("  edit the config file; changes apply live"))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Bold.Render("Cache"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d dataset(s) in memory\n\n", v.CacheSize))

	b.WriteString(styles.Bold.Render("About"))
	b.WriteString("\n  ")
	b.WriteString(version.Info())
	b.WriteString("\n")
	return b.String()
}

func refreshLabel(cfg *config.Config) string {
	if cfg.RefreshMode == "auto" {
		return "auto (30s live / 120s idle)"
	}
	if cfg.RefreshIntervalSecs == 0 {
		return "manual only"
	}
	return fmt.Sprintf("fixed, every %s", cfg.RefreshInterval())
}

// RenderHelp renders the full-screen help overlay.
func RenderHelp() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{"tab / shift+tab", "next / previous tab"},
			{", or ←", "previous day"},
			{". or →", "next day"},
			{"d", "jump to today"},
		}},
		{"Games", [][2]string{
			{"1-9 0 a-j", "open a game's box score"},
			{"f", "toggle favorite-team filter"},
			{"esc", "close box score"},
		}},
		{"General", [][2]string{
			{"r", "refresh current tab"},
			{"?", "toggle this help"},
			{"q", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, s := range sections {
		b.WriteString(styles.Bold.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.keys {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", k[0], k[1]))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.SubtleText.Render("press ? or esc to close"))
	return b.String()
}
