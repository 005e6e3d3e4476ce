package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication, as ANSI codes so they follow
// the user's terminal theme.
const (
	ColorSuccess lipgloss.Color = "2" // green
	ColorError   lipgloss.Color = "1" // red
	ColorWarning lipgloss.Color = "3" // yellow
	ColorInfo    lipgloss.Color = "6" // cyan
	ColorMuted   lipgloss.Color = "8" // gray (bright black)
)
