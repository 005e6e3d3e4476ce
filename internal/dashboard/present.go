package dashboard

import (
	"fmt"

	"github.com/sysmonitor/sysmon/internal/metrics"
	"github.com/sysmonitor/sysmon/internal/util"
)

// Display ceilings for the busier panels.
const (
	DefaultMaxDisks  = 5  // disk table rows
	DefaultMaxCores  = 8  // per-core breakdown hidden above this
	DefaultNameWidth = 20 // process name column
)

// Options fixes the static parts of the display.
type Options struct {
	Title         string
	Hostname      string
	ExportEnabled bool
	MaxDisks      int
	MaxCores      int
	NameWidth     int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "sysmon"
	}
	if o.MaxDisks <= 0 {
		o.MaxDisks = DefaultMaxDisks
	}
	if o.MaxCores <= 0 {
		o.MaxCores = DefaultMaxCores
	}
	if o.NameWidth <= 0 {
		o.NameWidth = DefaultNameWidth
	}
	return o
}

// RenderState is everything the view needs, precomputed from one
// sample. Building it is pure: the same sample and trend series always
// produce the same state, which is what the presentation tests lean on.
type RenderState struct {
	Title    string
	Hostname string
	Clock    string
	ExportOn bool

	CPU       CPUPanel
	Memory    MemoryPanel
	Disks     []DiskRow
	Network   NetworkPanel
	Processes []ProcessRow
}

// CPUPanel carries the overall gauge, optional per-core rows, and the
// recent history for the trend row.
type CPUPanel struct {
	Percent   float64
	Gauge     Gauge
	Cores     int
	Frequency string
	PerCore   []CoreGauge
	Trend     []float64
}

// CoreGauge is one per-core utilization row.
type CoreGauge struct {
	Index   int
	Percent float64
	Gauge   Gauge
}

// MemoryPanel carries the memory gauge plus formatted totals and the
// swap line.
type MemoryPanel struct {
	Percent   float64
	Gauge     Gauge
	Used      string
	Total     string
	Available string

	SwapPercent  float64
	SwapUsed     string
	SwapTotal    string
	SwapSeverity Severity

	Trend []float64
}

// DiskRow is one partition in the disk table.
type DiskRow struct {
	Device     string
	Mountpoint string
	Percent    float64
	Gauge      Gauge
	Used       string
	Total      string
}

// NetworkPanel carries formatted aggregate interface counters.
type NetworkPanel struct {
	Sent        string
	Recv        string
	PacketsSent string
	PacketsRecv string
	ErrIn       uint64
	ErrOut      uint64
	DropIn      uint64
	DropOut     uint64
	Connections string
}

// ProcessRow is one row of the top-process table. Name is already
// truncated to the display column width.
type ProcessRow struct {
	PID    int32
	Name   string
	CPU    float64
	Memory float64
	Status string
}

// present projects a sample and its trend series into a RenderState.
// Degraded domains arrive as zero values and render as such; nothing
// here inspects the degradation map.
func present(s metrics.Sample, cpuTrend, memTrend []float64, opts Options) RenderState {
	opts = opts.withDefaults()

	state := RenderState{
		Title:    opts.Title,
		Hostname: opts.Hostname,
		Clock:    FormatClock(s.Timestamp),
		ExportOn: opts.ExportEnabled,
	}

	state.CPU = presentCPU(s.CPU, cpuTrend, opts.MaxCores)
	state.Memory = presentMemory(s.Memory, memTrend)
	state.Disks = presentDisks(s.Disks, opts.MaxDisks)
	state.Network = presentNetwork(s.Network)
	state.Processes = presentProcesses(s.Processes, opts.NameWidth)
	return state
}

func presentCPU(c metrics.CPUSample, trend []float64, maxCores int) CPUPanel {
	panel := CPUPanel{
		Percent:   c.Percent,
		Gauge:     NewGauge(c.Percent, GaugeWidthWide, DefaultWarnThreshold, DefaultCritThreshold),
		Cores:     c.Cores,
		Frequency: FormatFrequency(c.FrequencyMHz),
		Trend:     trend,
	}
	if c.Cores > 0 && c.Cores <= maxCores {
		for i, pct := range c.PerCore {
			panel.PerCore = append(panel.PerCore, CoreGauge{
				Index:   i,
				Percent: pct,
				Gauge:   NewGauge(pct, GaugeWidthCore, DefaultWarnThreshold, DefaultCritThreshold),
			})
		}
	}
	return panel
}

func presentMemory(m metrics.MemorySample, trend []float64) MemoryPanel {
	return MemoryPanel{
		Percent:      m.Percent,
		Gauge:        NewGauge(m.Percent, GaugeWidthWide, DefaultWarnThreshold, DefaultCritThreshold),
		Used:         FormatBytes(m.UsedBytes),
		Total:        FormatBytes(m.TotalBytes),
		Available:    FormatBytes(m.AvailableBytes),
		SwapPercent:  m.SwapPercent,
		SwapUsed:     FormatBytes(m.SwapUsedBytes),
		SwapTotal:    FormatBytes(m.SwapTotalBytes),
		SwapSeverity: SeverityFor(m.SwapPercent, DefaultWarnThreshold, DefaultCritThreshold),
		Trend:        trend,
	}
}

func presentDisks(disks []metrics.DiskUsage, max int) []DiskRow {
	if len(disks) > max {
		disks = disks[:max]
	}
	rows := make([]DiskRow, 0, len(disks))
	for _, d := range disks {
		rows = append(rows, DiskRow{
			Device:     d.Device,
			Mountpoint: d.Mountpoint,
			Percent:    d.Percent,
			Gauge:      NewGauge(d.Percent, GaugeWidthDisk, DiskWarnThreshold, DiskCritThreshold),
			Used:       FormatBytes(d.UsedBytes),
			Total:      FormatBytes(d.TotalBytes),
		})
	}
	return rows
}

func presentNetwork(n metrics.NetworkSample) NetworkPanel {
	return NetworkPanel{
		Sent:        FormatBytes(n.BytesSent),
		Recv:        FormatBytes(n.BytesRecv),
		PacketsSent: FormatCount(n.PacketsSent),
		PacketsRecv: FormatCount(n.PacketsRecv),
		ErrIn:       n.ErrIn,
		ErrOut:      n.ErrOut,
		DropIn:      n.DropIn,
		DropOut:     n.DropOut,
		Connections: FormatCount(uint64(n.Connections)),
	}
}

func presentProcesses(procs []metrics.ProcessInfo, nameWidth int) []ProcessRow {
	rows := make([]ProcessRow, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, ProcessRow{
			PID:    p.PID,
			Name:   util.Truncate(p.Name, nameWidth),
			CPU:    p.CPUPercent,
			Memory: p.MemoryPercent,
			Status: p.Status,
		})
	}
	return rows
}

// coreLabel names a per-core row, zero padded so columns line up.
func coreLabel(index int) string {
	return fmt.Sprintf("Core %2d", index)
}
