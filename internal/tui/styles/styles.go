package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles
var Theme = struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Directory lipgloss.Style
	File      lipgloss.Style
	Marked    lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Pane      lipgloss.Style
	Prompt    lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF")).
		MarginBottom(1),
	Cursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#4F4FB7")),
	Directory: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#81A1C1")).
		Bold(true),
	File: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")),
	Marked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F5F")),
	Pane: lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")),
	Prompt: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7B61FF")).
		Bold(true),
}
