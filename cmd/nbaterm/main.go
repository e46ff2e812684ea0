// Package main is the entry point for nbaterm. With no arguments it runs the
// full-screen TUI; flags select the one-shot CLI modes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/douglasdamasio/nbaterm/internal/app"
	"github.com/douglasdamasio/nbaterm/internal/cache"
	"github.com/douglasdamasio/nbaterm/internal/config"
	"github.com/douglasdamasio/nbaterm/internal/export"
	"github.com/douglasdamasio/nbaterm/internal/logger"
	"github.com/douglasdamasio/nbaterm/internal/scoreboard"
	"github.com/douglasdamasio/nbaterm/internal/services"
	"github.com/douglasdamasio/nbaterm/internal/services/data"
	"github.com/douglasdamasio/nbaterm/internal/ui"
	"github.com/douglasdamasio/nbaterm/internal/upstream"
	"github.com/douglasdamasio/nbaterm/internal/version"
)

const oneShotTimeout = 60 * time.Second

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			return
		case "-h", "--help":
			printUsage()
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(os.Args) > 1 {
		return runOneShot(cfg, os.Args[1:])
	}
	return runTUI(cfg)
}

// runOneShot handles the non-TUI modes: plain text dumps and exports.
func runOneShot(cfg *config.Config, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	svc := data.New(cfg, upstream.NewClient())

	switch args[0] {
	case "-t", "--today-games":
		sb, fr, err := svc.Games(ctx, "")
		if err != nil {
			return err
		}
		states := scoreboard.Classify(scoreboard.SortGames(sb.Games, cfg.GameSort, cfg.FavoriteTeam))
		fmt.Println(ui.RenderGames(ui.GamesView{
			Date: sb.Date, States: states, Stale: fr == cache.StaleUsable, Favorite: cfg.FavoriteTeam,
		}))
		return nil

	case "-s", "--standings":
		st, fr, err := svc.Standings(ctx)
		if err != nil {
			return err
		}
		fmt.Println(ui.RenderStandings(ui.StandingsView{
			Standings: st, Stale: fr == cache.StaleUsable, Favorite: cfg.FavoriteTeam, Width: 120,
		}))
		return nil

	case "-l", "--last-results":
		date, sb, fr, err := svc.LastResults(ctx)
		if err != nil {
			return err
		}
		states := scoreboard.Classify(scoreboard.SortGames(sb.Games, cfg.GameSort, cfg.FavoriteTeam))
		fmt.Println(ui.RenderGames(ui.GamesView{
			Date: date, States: states, Stale: fr == cache.StaleUsable, Favorite: cfg.FavoriteTeam,
		}))
		return nil

	case "--export-games":
		format, err := exportFormat(args)
		if err != nil {
			return err
		}
		sb, _, err := svc.Games(ctx, "")
		if err != nil {
			return err
		}
		return export.Games(os.Stdout, sb, format)

	case "--export-standings":
		format, err := exportFormat(args)
		if err != nil {
			return err
		}
		st, _, err := svc.Standings(ctx)
		if err != nil {
			return err
		}
		return export.Standings(os.Stdout, st, format)

	default:
		printUsage()
		return fmt.Errorf("unknown flag %q", args[0])
	}
}

func exportFormat(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%s requires a format argument (json or csv)", args[0])
	}
	return args[1], nil
}

func runTUI(cfg *config.Config) error {
	// The TUI owns the terminal; logs go to a file instead.
	closeLog, err := logger.Setup(config.Dir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
	} else {
		defer func() { _ = closeLog() }()
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := mgr.Close(); closeErr != nil {
			logger.Warn("error closing services", "error", closeErr)
		}
	}()

	model := app.NewModel(mgr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`nbaterm - NBA terminal dashboard

Usage:
  nbaterm [flags]

Flags:
  (none)                      Run the full-screen TUI
  -t, --today-games           Print today's games and exit
  -s, --standings             Print conference standings and exit
  -l, --last-results          Print the most recent day with games and exit
      --export-games FORMAT   Export today's games (json or csv) to stdout
      --export-standings FORMAT
                              Export standings (json or csv) to stdout
  -h, --help                  Show this help message
  -v, --version               Show version information

Keyboard Shortcuts (TUI):
  Tab/Shift+Tab   Switch tab (Games, Standings, Leaders, Info)
  , . or Arrows   Previous/next day      d   Jump to today
  1-9 0 a-j       Open a game's box score
  f               Favorite-team filter   r   Refresh
  ?               Help                   q   Quit

Environment Variables:
  NBATERM_FAVORITE_TEAM            Favorite team tricode (e.g. LAL)
  NBATERM_REFRESH_MODE             fixed or auto
  NBATERM_REFRESH_INTERVAL         Seconds between refreshes (0 = manual)
  NBATERM_CACHE_DIR                Cache database directory
  NBATERM_MIN_REQUEST_INTERVAL_MS  Minimum upstream request spacing
  NBATERM_LOG_LEVEL                debug, info, warn or error

Configuration:
  ~/.config/nbaterm/config.json (created on first run; edits apply live)`)
}
