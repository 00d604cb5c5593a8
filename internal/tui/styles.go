package tui

import "github.com/charmbracelet/lipgloss"

// theme holds the visual styles for the TUI.
type theme struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	FormLabel   lipgloss.Style
	FormFocused lipgloss.Style
	Box         lipgloss.Style
}

var defaultTheme = theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#C9A227")).
		MarginBottom(1),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	StatusOK: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	StatusWarn: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	FormLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Width(14),
	FormFocused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#C9A227")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}
