package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

var errBackendDown = errors.New("backend down")

// fakeProvider fails exactly the domains listed in failing.
type fakeProvider struct {
	failing map[metrics.Domain]bool
}

func (p *fakeProvider) CPU(ctx context.Context) (metrics.CPUSample, error) {
	if p.failing[metrics.DomainCPU] {
		return metrics.CPUSample{}, errBackendDown
	}
	return metrics.CPUSample{Percent: 10, Cores: 1}, nil
}

func (p *fakeProvider) Memory(ctx context.Context) (metrics.MemorySample, error) {
	if p.failing[metrics.DomainMemory] {
		return metrics.MemorySample{}, errBackendDown
	}
	return metrics.MemorySample{Percent: 20}, nil
}

func (p *fakeProvider) Disks(ctx context.Context) ([]metrics.DiskUsage, error) {
	if p.failing[metrics.DomainDisk] {
		return nil, errBackendDown
	}
	return []metrics.DiskUsage{{Device: "/dev/sda1", Mountpoint: "/"}}, nil
}

func (p *fakeProvider) Network(ctx context.Context) (metrics.NetworkSample, error) {
	if p.failing[metrics.DomainNetwork] {
		return metrics.NetworkSample{}, errBackendDown
	}
	return metrics.NetworkSample{}, nil
}

func (p *fakeProvider) Processes(ctx context.Context, maxScan int) ([]metrics.ProcessInfo, error) {
	if p.failing[metrics.DomainProcess] {
		return nil, errBackendDown
	}
	return []metrics.ProcessInfo{{PID: 1, Name: "systemd"}}, nil
}

func TestDomainsCheckAllReporting(t *testing.T) {
	check := &DomainsCheck{Provider: &fakeProvider{}}

	result := check.Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "All 5 metric domains reporting", result.Message)
}

func TestDomainsCheckPartialOutage(t *testing.T) {
	check := &DomainsCheck{Provider: &fakeProvider{failing: map[metrics.Domain]bool{
		metrics.DomainDisk:    true,
		metrics.DomainNetwork: true,
	}}}

	result := check.Run()

	assert.Equal(t, StatusWarn, result.Status)
	assert.Contains(t, result.Message, "2 of 5 domains unavailable")
	assert.Contains(t, result.Message, "disk, network")
}

func TestDomainsCheckTotalOutage(t *testing.T) {
	allFailing := make(map[metrics.Domain]bool)
	for _, d := range metrics.Domains {
		allFailing[d] = true
	}
	check := &DomainsCheck{Provider: &fakeProvider{failing: allFailing}}

	result := check.Run()

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "No metric domain")
}

func TestNewMetricsChecks(t *testing.T) {
	checks := NewMetricsChecks(&fakeProvider{})

	assert.Len(t, checks, 2)
	for _, check := range checks {
		assert.Equal(t, "METRICS", check.Category())
	}
}
