package doctor

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TTYCheck verifies stdout is an interactive terminal. The dashboard
// refuses to start without one, so a pipe here is worth flagging.
type TTYCheck struct{}

func (c *TTYCheck) Name() string     { return "terminal_tty" }
func (c *TTYCheck) Category() string { return "TERMINAL" }

func (c *TTYCheck) Run() CheckResult {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "stdout is not an interactive terminal",
			Suggestion: "The dashboard needs a TTY; use 'sysmon snapshot' for scripted output",
		}
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Interactive terminal",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Interactive terminal (%dx%d)", width, height),
	}
}

// ColorProfileCheck reports the detected color capability.
type ColorProfileCheck struct{}

func (c *ColorProfileCheck) Name() string     { return "terminal_colors" }
func (c *ColorProfileCheck) Category() string { return "TERMINAL" }

func (c *ColorProfileCheck) Run() CheckResult {
	profile := termenv.ColorProfile()

	if profile == termenv.Ascii {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No color support detected",
			Suggestion: "Gauges and severity tiers render without color; check $TERM",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Color support: %s", profileName(profile)),
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "true color"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "monochrome"
	}
}

// NewTerminalChecks creates all terminal-related checks.
func NewTerminalChecks() []Check {
	return []Check{
		&TTYCheck{},
		&ColorProfileCheck{},
	}
}
