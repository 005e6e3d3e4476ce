// Package metrics collects point-in-time host resource samples: CPU,
// memory, disk, network, and top processes. Each domain is queried
// independently and fails independently; a Sample is always constructed.
package metrics

import "time"

// Domain identifies one independently failable metric category.
type Domain string

const (
	DomainCPU     Domain = "cpu"
	DomainMemory  Domain = "memory"
	DomainDisk    Domain = "disk"
	DomainNetwork Domain = "network"
	DomainProcess Domain = "process"
)

// Domains lists all metric domains in collection order.
var Domains = []Domain{DomainCPU, DomainMemory, DomainDisk, DomainNetwork, DomainProcess}

// Sample is the full set of per-domain snapshots collected in one tick.
// Sub-records are independently defaultable: a failed domain carries its
// zero value and an entry in Degraded, never an aborted Sample.
type Sample struct {
	Timestamp time.Time     `json:"timestamp"`
	CPU       CPUSample     `json:"cpu"`
	Memory    MemorySample  `json:"memory"`
	Disks     []DiskUsage   `json:"disks"`
	Network   NetworkSample `json:"network"`
	Processes []ProcessInfo `json:"processes"`

	// Degraded records the cause for every domain that fell back to its
	// default value this tick. Not serialized; read by logs and tests.
	Degraded map[Domain]error `json:"-"`
}

// IsDegraded reports whether the given domain fell back to its default.
func (s Sample) IsDegraded(d Domain) bool {
	_, ok := s.Degraded[d]
	return ok
}

// CPUSample contains overall and per-core utilization.
type CPUSample struct {
	Percent float64   `json:"percent"`
	PerCore []float64 `json:"per_core,omitempty"`
	Cores   int       `json:"cores"`
	// FrequencyMHz is 0 when the platform does not report it.
	FrequencyMHz float64 `json:"frequency_mhz,omitempty"`
}

// MemorySample contains virtual memory and swap usage.
type MemorySample struct {
	TotalBytes     uint64  `json:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	Percent        float64 `json:"percent"`
	SwapTotalBytes uint64  `json:"swap_total_bytes"`
	SwapUsedBytes  uint64  `json:"swap_used_bytes"`
	SwapPercent    float64 `json:"swap_percent"`
}

// DiskUsage describes one mounted partition. Partitions whose usage query
// fails are omitted from the Sample rather than reported as zeros.
type DiskUsage struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	TotalBytes uint64  `json:"total_bytes"`
	UsedBytes  uint64  `json:"used_bytes"`
	FreeBytes  uint64  `json:"free_bytes"`
	Percent    float64 `json:"percent"`
}

// NetworkSample contains host-wide interface counters since boot.
type NetworkSample struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrIn       uint64 `json:"err_in"`
	ErrOut      uint64 `json:"err_out"`
	DropIn      uint64 `json:"drop_in"`
	DropOut     uint64 `json:"drop_out"`
	Connections int    `json:"connections"`
}

// ProcessInfo describes one process in the top-by-CPU list.
type ProcessInfo struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Status        string  `json:"status"`
}

// HostInfo identifies the sampled host. Fetched once at startup, not per
// tick.
type HostInfo struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Platform string `json:"platform"`
}
