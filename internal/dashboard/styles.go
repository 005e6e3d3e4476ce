package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorBorder = lipgloss.Color("#3B4261")

	// Semantic colors for metric severity
	ColorHealthy  = lipgloss.Color("#00D787") // green
	ColorWarning  = lipgloss.Color("#FFB454") // amber
	ColorCritical = lipgloss.Color("#FF5370") // red

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#E6E6F0")
	ColorTextSecondary = lipgloss.Color("#A9B1D6")
	ColorTextMuted     = lipgloss.Color("#565F89")

	// Accent for titles and the trend graphs
	ColorAccent = lipgloss.Color("#56C8FF")
)

// Severity thresholds. Most gauges use the default pair; disk usage runs
// hotter before it matters, so it gets a stricter pair.
const (
	DefaultWarnThreshold = 50.0
	DefaultCritThreshold = 80.0
	DiskWarnThreshold    = 70.0
	DiskCritThreshold    = 90.0
)

// Gauge widths per panel.
const (
	GaugeWidthWide = 50 // overall CPU and memory
	GaugeWidthCore = 25 // per-core rows
	GaugeWidthDisk = 20 // disk table rows
)

// Severity buckets a percentage into one of three display tiers.
type Severity int

const (
	SeverityNominal Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns the tier name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "nominal"
	}
}

// Color returns the palette color for the tier.
func (s Severity) Color() lipgloss.Color {
	switch s {
	case SeverityWarning:
		return ColorWarning
	case SeverityCritical:
		return ColorCritical
	default:
		return ColorHealthy
	}
}

// SeverityFor buckets percent against the given thresholds. A value
// sitting exactly on a threshold maps to the higher tier.
func SeverityFor(percent, warn, crit float64) Severity {
	switch {
	case percent >= crit:
		return SeverityCritical
	case percent >= warn:
		return SeverityWarning
	default:
		return SeverityNominal
	}
}

// Gauge is a fixed-width textual utilization bar.
type Gauge struct {
	Percent  float64
	Width    int
	Severity Severity
}

// NewGauge builds a gauge for percent at the given width, bucketing its
// severity with the supplied thresholds. Percent is clamped to [0,100].
func NewGauge(percent float64, width int, warn, crit float64) Gauge {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Gauge{
		Percent:  percent,
		Width:    width,
		Severity: SeverityFor(percent, warn, crit),
	}
}

// Filled returns the number of fill glyphs: floor(percent * width / 100).
func (g Gauge) Filled() int {
	filled := int(g.Percent * float64(g.Width) / 100.0)
	if filled > g.Width {
		filled = g.Width
	}
	return filled
}

// Render paints the bar with █ fill and ░ remainder in the severity color.
func (g Gauge) Render() string {
	filled := g.Filled()
	bar := strings.Repeat("█", filled) + strings.Repeat("░", g.Width-filled)
	return lipgloss.NewStyle().Foreground(g.Severity.Color()).Render(bar)
}

// Base styles for the dashboard chrome.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ExportOnStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	ErrorNoticeStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true)

	StoppedStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy)
)

// SeverityStyle returns a foreground style for the tier of percent under
// the default thresholds.
func SeverityStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeverityFor(percent, DefaultWarnThreshold, DefaultCritThreshold).Color())
}

// StatusStyle colors a process status string: running is healthy, all
// other states are shown in the warning color.
func StatusStyle(status string) lipgloss.Style {
	if status == "running" {
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	}
	return lipgloss.NewStyle().Foreground(ColorWarning)
}
