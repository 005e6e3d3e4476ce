package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Provider exposes the five per-domain snapshot queries. Each call may
// fail independently; callers are expected to treat a failure as a
// degraded domain, not an aborted sample.
type Provider interface {
	CPU(ctx context.Context) (CPUSample, error)
	Memory(ctx context.Context) (MemorySample, error)
	Disks(ctx context.Context) ([]DiskUsage, error)
	Network(ctx context.Context) (NetworkSample, error)
	// Processes scans at most maxScan candidates and returns the survivors
	// unsorted; entries that disappear or deny access mid-scan are skipped.
	Processes(ctx context.Context, maxScan int) ([]ProcessInfo, error)
}

// DefaultCPUWindow is the blocking measurement window used to compute
// interval-based CPU utilization. Bounded and small so it fits inside the
// tick budget.
const DefaultCPUWindow = 100 * time.Millisecond

// SystemProvider reads metrics from the local host via gopsutil.
type SystemProvider struct {
	// CPUWindow overrides DefaultCPUWindow when positive.
	CPUWindow time.Duration
}

// NewSystemProvider returns a local-host provider with default settings.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

func (p *SystemProvider) window() time.Duration {
	if p.CPUWindow > 0 {
		return p.CPUWindow
	}
	return DefaultCPUWindow
}

// CPU measures utilization over the blocking window, per core, and derives
// the overall percentage from the per-core values. Core count and
// frequency are best-effort extras and never fail the domain.
func (p *SystemProvider) CPU(ctx context.Context) (CPUSample, error) {
	perCore, err := cpu.PercentWithContext(ctx, p.window(), true)
	if err != nil {
		return CPUSample{}, err
	}

	var overall float64
	for _, c := range perCore {
		overall += c
	}
	if len(perCore) > 0 {
		overall /= float64(len(perCore))
	}

	cores, cErr := cpu.CountsWithContext(ctx, true)
	if cErr != nil || cores == 0 {
		cores = len(perCore)
	}

	sample := CPUSample{
		Percent: overall,
		PerCore: perCore,
		Cores:   cores,
	}

	if info, iErr := cpu.InfoWithContext(ctx); iErr == nil && len(info) > 0 {
		sample.FrequencyMHz = info[0].Mhz
	}

	return sample, nil
}

// Memory reads virtual memory and swap in one domain query.
func (p *SystemProvider) Memory(ctx context.Context) (MemorySample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemorySample{}, err
	}

	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return MemorySample{}, err
	}

	return MemorySample{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedBytes:      vm.Used,
		Percent:        vm.UsedPercent,
		SwapTotalBytes: swap.Total,
		SwapUsedBytes:  swap.Used,
		SwapPercent:    swap.UsedPercent,
	}, nil
}

// Disks enumerates mounted partitions and queries usage for each.
// Partitions whose usage query fails (commonly permission denied on
// virtual filesystems) are omitted, not zeroed.
func (p *SystemProvider) Disks(ctx context.Context) ([]DiskUsage, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	out := make([]DiskUsage, 0, len(parts))
	for _, part := range parts {
		usage, uErr := disk.UsageWithContext(ctx, part.Mountpoint)
		if uErr != nil {
			continue
		}
		out = append(out, DiskUsage{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
			TotalBytes: usage.Total,
			UsedBytes:  usage.Used,
			FreeBytes:  usage.Free,
			Percent:    usage.UsedPercent,
		})
	}
	return out, nil
}

// Network reads host-wide aggregate interface counters plus the count of
// active inet connections.
func (p *SystemProvider) Network(ctx context.Context) (NetworkSample, error) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetworkSample{}, err
	}
	if len(counters) == 0 {
		return NetworkSample{}, fmt.Errorf("no aggregate interface counters")
	}

	conns, err := gopsnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return NetworkSample{}, err
	}

	agg := counters[0]
	return NetworkSample{
		BytesSent:   agg.BytesSent,
		BytesRecv:   agg.BytesRecv,
		PacketsSent: agg.PacketsSent,
		PacketsRecv: agg.PacketsRecv,
		ErrIn:       agg.Errin,
		ErrOut:      agg.Errout,
		DropIn:      agg.Dropin,
		DropOut:     agg.Dropout,
		Connections: len(conns),
	}, nil
}

// Processes scans up to maxScan processes. A process that exits mid-scan
// or denies access is skipped individually; a missing status is reported
// as "unknown" rather than dropping the entry.
func (p *SystemProvider) Processes(ctx context.Context, maxScan int) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if maxScan > 0 && len(procs) > maxScan {
		procs = procs[:maxScan]
	}

	out := make([]ProcessInfo, 0, len(procs))
	for _, proc := range procs {
		name, nErr := proc.NameWithContext(ctx)
		if nErr != nil {
			continue
		}
		cpuPct, cErr := proc.CPUPercentWithContext(ctx)
		if cErr != nil {
			continue
		}
		memPct, mErr := proc.MemoryPercentWithContext(ctx)
		if mErr != nil {
			continue
		}

		status := "unknown"
		if st, sErr := proc.StatusWithContext(ctx); sErr == nil && len(st) > 0 {
			status = st[0]
		}

		out = append(out, ProcessInfo{
			PID:           proc.Pid,
			Name:          name,
			CPUPercent:    cpuPct,
			MemoryPercent: float64(memPct),
			Status:        status,
		})
	}
	return out, nil
}

// ReadHostInfo identifies the local host for the dashboard header. Separate
// from the Provider contract; called once at startup.
func ReadHostInfo(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, err
	}
	return HostInfo{
		Hostname: info.Hostname,
		OS:       info.OS,
		Platform: info.Platform,
	}, nil
}
