package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sysmonitor/sysmon/internal/util"
)

// View renders the current state. A rendering bug must not take down
// the monitor, so panics here are caught and replaced with a minimal
// notice instead of crashing the program.
func (m Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ErrorNoticeStyle.Render(fmt.Sprintf("render error: %v", r)) +
				"\n" + FooterStyle.Render("q: quit")
		}
	}()

	if !m.haveSample {
		return m.renderLoading()
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderCPUCard(m.state.CPU),
		renderMemoryCard(m.state.Memory),
		renderDiskCard(m.state.Disks),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderNetworkCard(m.state.Network),
		renderProcessCard(m.state.Processes),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderFooter(),
	)
}

func (m Model) renderLoading() string {
	return "\n  " + m.loading.View() + MutedStyle.Render(" gathering first sample...")
}

func (m Model) renderFooter() string {
	help := FooterStyle.Render("q: quit")
	if m.lastErr != nil {
		return help + "  " + ErrorNoticeStyle.Render("⚠ collection failed, retrying")
	}
	return help
}

func renderHeader(s RenderState) string {
	sep := MutedStyle.Render("  │  ")
	parts := []string{TitleStyle.Render(s.Title)}
	if s.Hostname != "" {
		parts = append(parts, HeaderInfoStyle.Render(s.Hostname))
	}
	parts = append(parts, HeaderInfoStyle.Render(s.Clock))
	if s.ExportOn {
		parts = append(parts, ExportOnStyle.Render("CloudWatch: ON"))
	} else {
		parts = append(parts, MutedStyle.Render("CloudWatch: OFF"))
	}
	return " " + strings.Join(parts, sep)
}

// card wraps titled content lines in the shared border style.
func card(title string, lines ...string) string {
	content := CardTitleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return CardStyle.Render(content)
}

func renderCPUCard(p CPUPanel) string {
	lines := []string{
		gaugeLine("Usage", p.Gauge),
		LabelStyle.Render("Cores: ") + ValueStyle.Render(fmt.Sprintf("%d", p.Cores)) +
			LabelStyle.Render("   Base: ") + ValueStyle.Render(p.Frequency),
		RenderTrend(p.Trend, GaugeWidthWide, ColorAccent),
	}
	for _, core := range p.PerCore {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			LabelStyle.Render(coreLabel(core.Index)),
			core.Gauge.Render(),
			pctText(core.Percent, core.Gauge.Severity)))
	}
	return card("CPU", lines...)
}

func renderMemoryCard(p MemoryPanel) string {
	swap := fmt.Sprintf("Swap: %s / %s (%.1f%%)", p.SwapUsed, p.SwapTotal, p.SwapPercent)
	lines := []string{
		gaugeLine("Usage", p.Gauge),
		LabelStyle.Render("Used: ") + ValueStyle.Render(p.Used) +
			LabelStyle.Render(" / ") + ValueStyle.Render(p.Total) +
			LabelStyle.Render("   Avail: ") + ValueStyle.Render(p.Available),
		lipgloss.NewStyle().Foreground(p.SwapSeverity.Color()).Render(swap),
		RenderTrend(p.Trend, GaugeWidthWide, ColorAccent),
	}
	return card("Memory", lines...)
}

func renderDiskCard(rows []DiskRow) string {
	if len(rows) == 0 {
		return card("Disk", MutedStyle.Render("no partitions visible"))
	}
	lines := make([]string, 0, len(rows))
	for _, d := range rows {
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			ValueStyle.Render(padRight(util.Truncate(d.Mountpoint, 12), 12)),
			d.Gauge.Render(),
			pctText(d.Percent, d.Gauge.Severity),
			MutedStyle.Render(fmt.Sprintf("%s / %s  %s", d.Used, d.Total, d.Device))))
	}
	return card("Disk", lines...)
}

func renderNetworkCard(p NetworkPanel) string {
	counterStyle := func(n, m uint64) lipgloss.Style {
		if n > 0 || m > 0 {
			return lipgloss.NewStyle().Foreground(ColorCritical)
		}
		return ValueStyle
	}
	lines := []string{
		netLine("Sent", p.Sent),
		netLine("Received", p.Recv),
		netLine("Packets out", p.PacketsSent),
		netLine("Packets in", p.PacketsRecv),
		LabelStyle.Render(padRight("Errors", 13)) +
			counterStyle(p.ErrIn, p.ErrOut).Render(fmt.Sprintf("%d in / %d out", p.ErrIn, p.ErrOut)),
		LabelStyle.Render(padRight("Drops", 13)) +
			counterStyle(p.DropIn, p.DropOut).Render(fmt.Sprintf("%d in / %d out", p.DropIn, p.DropOut)),
		netLine("Connections", p.Connections),
	}
	return card("Network", lines...)
}

func netLine(label, value string) string {
	return LabelStyle.Render(padRight(label, 13)) + ValueStyle.Render(value)
}

func renderProcessCard(rows []ProcessRow) string {
	header := MutedStyle.Render(fmt.Sprintf("%7s  %-20s %6s %6s  %s",
		"PID", "NAME", "CPU%", "MEM%", "STATUS"))
	if len(rows) == 0 {
		return card("Processes", header, MutedStyle.Render("no process data"))
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, header)
	for _, p := range rows {
		lines = append(lines, fmt.Sprintf("%s  %s %s %s  %s",
			ValueStyle.Render(fmt.Sprintf("%7d", p.PID)),
			ValueStyle.Render(padRight(p.Name, 20)),
			SeverityStyle(p.CPU).Render(fmt.Sprintf("%6.1f", p.CPU)),
			SeverityStyle(p.Memory).Render(fmt.Sprintf("%6.1f", p.Memory)),
			StatusStyle(p.Status).Render(p.Status)))
	}
	return card("Processes", lines...)
}

func gaugeLine(label string, g Gauge) string {
	return fmt.Sprintf("%s %s %s",
		LabelStyle.Render(padRight(label, 6)), g.Render(), pctText(g.Percent, g.Severity))
}

func pctText(percent float64, sev Severity) string {
	return lipgloss.NewStyle().Foreground(sev.Color()).Render(fmt.Sprintf("%5.1f%%", percent))
}

// padRight pads s with spaces to the given display width, measuring
// rendered width so styled strings line up too.
func padRight(s string, width int) string {
	if d := width - lipgloss.Width(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
