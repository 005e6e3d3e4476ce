package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// probeTimeout bounds each metrics probe so a hung platform API cannot
// stall the report.
const probeTimeout = 10 * time.Second

// HostInfoCheck verifies the platform reports host identity.
type HostInfoCheck struct{}

func (c *HostInfoCheck) Name() string     { return "metrics_host" }
func (c *HostInfoCheck) Category() string { return "METRICS" }

func (c *HostInfoCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	info, err := metrics.ReadHostInfo(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Host info unavailable: %v", err),
			Suggestion: "The dashboard header will not show a hostname",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Host: %s (%s)", info.Hostname, info.Platform),
	}
}

// DomainsCheck runs one collection cycle and reports which metric
// domains fell back to defaults.
type DomainsCheck struct {
	Provider metrics.Provider
}

func (c *DomainsCheck) Name() string     { return "metrics_domains" }
func (c *DomainsCheck) Category() string { return "METRICS" }

func (c *DomainsCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	collector := metrics.NewCollector(c.Provider, 1, logger.Noop())
	sample := collector.Collect(ctx)

	var degraded []string
	for _, d := range metrics.Domains {
		if sample.IsDegraded(d) {
			degraded = append(degraded, string(d))
		}
	}

	total := len(metrics.Domains)
	switch {
	case len(degraded) == 0:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("All %d metric domains reporting", total),
		}
	case len(degraded) == total:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No metric domain is reporting",
			Suggestion: "Check that /proc and /sys are readable, or run outside the restricted environment",
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%d of %d domains unavailable: %s", len(degraded), total, strings.Join(degraded, ", ")),
			Suggestion: "The dashboard shows defaults for these panels",
		}
	}
}

// NewMetricsChecks creates all metric source checks.
func NewMetricsChecks(provider metrics.Provider) []Check {
	return []Check{
		&HostInfoCheck{},
		&DomainsCheck{Provider: provider},
	}
}
