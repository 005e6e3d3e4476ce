package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/sysmonitor/sysmon/internal/logger"
)

const (
	// DefaultProcessLimit is the number of rows kept in the top-process list.
	DefaultProcessLimit = 10

	// DefaultProcessScan bounds how many candidate processes one tick will
	// examine. Keeps tick latency flat on hosts with huge process tables.
	DefaultProcessScan = 200
)

// Collector produces one Sample per tick. Every provider failure is
// contained to its domain: the Sample always comes back, degraded domains
// carry their zero value plus a Degraded entry.
type Collector struct {
	provider Provider
	history  *History
	limit    int
	maxScan  int
	log      logger.Logger
}

// NewCollector creates a collector on top of the given provider. A nil
// log falls back to the package default; limit <= 0 means
// DefaultProcessLimit.
func NewCollector(provider Provider, limit int, log logger.Logger) *Collector {
	if limit <= 0 {
		limit = DefaultProcessLimit
	}
	if log == nil {
		log = logger.Default()
	}
	return &Collector{
		provider: provider,
		history:  NewHistory(DefaultHistorySize),
		limit:    limit,
		maxScan:  DefaultProcessScan,
		log:      log,
	}
}

// History returns the rolling CPU/memory window maintained by this
// collector.
func (c *Collector) History() *History {
	return c.history
}

// Limit returns the configured top-process row count.
func (c *Collector) Limit() int {
	return c.limit
}

// Collect queries all five domains and assembles a Sample. It never
// returns an error; consult Sample.Degraded for domains that fell back to
// defaults this tick.
func (c *Collector) Collect(ctx context.Context) Sample {
	s := Sample{
		Timestamp: time.Now(),
		Degraded:  make(map[Domain]error),
	}

	if cpuSample, err := c.provider.CPU(ctx); err != nil {
		c.degrade(&s, DomainCPU, err)
	} else {
		s.CPU = cpuSample
		c.history.PushCPU(cpuSample.Percent)
	}

	if memSample, err := c.provider.Memory(ctx); err != nil {
		c.degrade(&s, DomainMemory, err)
	} else {
		s.Memory = memSample
		c.history.PushMemory(memSample.Percent)
	}

	if disks, err := c.provider.Disks(ctx); err != nil {
		c.degrade(&s, DomainDisk, err)
	} else {
		s.Disks = disks
	}

	if netSample, err := c.provider.Network(ctx); err != nil {
		c.degrade(&s, DomainNetwork, err)
	} else {
		s.Network = netSample
	}

	if procs, err := c.provider.Processes(ctx, c.maxScan); err != nil {
		c.degrade(&s, DomainProcess, err)
	} else {
		s.Processes = topByCPU(procs, c.limit)
	}

	return s
}

func (c *Collector) degrade(s *Sample, d Domain, err error) {
	s.Degraded[d] = err
	c.log.Debug("%s collection degraded, using defaults: %v", d, err)
}

// topByCPU sorts processes by CPU descending with stable ties (scan order
// preserved) and truncates to limit.
func topByCPU(procs []ProcessInfo, limit int) []ProcessInfo {
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].CPUPercent > procs[j].CPUPercent
	})
	if limit > 0 && len(procs) > limit {
		procs = procs[:limit]
	}
	return procs
}
