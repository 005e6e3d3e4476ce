package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Successf renders a green checkmarked status line.
func Successf(format string, a ...any) string {
	return successStyle.Render(SymbolSuccess + " " + fmt.Sprintf(format, a...))
}

// Errorf renders a red crossed status line.
func Errorf(format string, a ...any) string {
	return errorStyle.Render(SymbolFail + " " + fmt.Sprintf(format, a...))
}

// Warnf renders a yellow status line.
func Warnf(format string, a ...any) string {
	return warningStyle.Render(fmt.Sprintf(format, a...))
}

// Infof renders a cyan status line.
func Infof(format string, a ...any) string {
	return infoStyle.Render(SymbolInfo + " " + fmt.Sprintf(format, a...))
}

// Mutedf renders a gray status line for secondary detail.
func Mutedf(format string, a ...any) string {
	return mutedStyle.Render(fmt.Sprintf(format, a...))
}
