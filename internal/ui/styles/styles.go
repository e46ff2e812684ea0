// Package styles defines the shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette colors.
var (
	Subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	Highlight = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	Success   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	Warning   = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	ErrColor  = lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	LiveColor = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Tab bar styles.
var (
	TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(Subtle)
	ActiveTab    = lipgloss.NewStyle().Bold(true).Foreground(Highlight).Padding(0, 2)
	InactiveTab  = lipgloss.NewStyle().Foreground(Subtle).Padding(0, 2)
	TabSeparator = lipgloss.NewStyle().Foreground(Subtle).SetString("|")
)

// Content styles.
var (
	Content    = lipgloss.NewStyle().Padding(1, 2)
	Title      = lipgloss.NewStyle().Bold(true).Foreground(Highlight)
	SubtleText = lipgloss.NewStyle().Foreground(Subtle)
	Bold       = lipgloss.NewStyle().Bold(true)
	Error      = lipgloss.NewStyle().Foreground(ErrColor)
	Live       = lipgloss.NewStyle().Bold(true).Foreground(LiveColor)
	Final      = lipgloss.NewStyle().Foreground(Success)
	Scheduled  = lipgloss.NewStyle().Foreground(Subtle)
	Favorite   = lipgloss.NewStyle().Bold(true).Foreground(Highlight)
	Hotkey     = lipgloss.NewStyle().Foreground(Highlight)
	Help       = lipgloss.NewStyle().Foreground(Subtle).Padding(0, 1)

	// OfflineBanner marks views rendered from stale cached data.
	OfflineBanner = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(Subtle)
)
