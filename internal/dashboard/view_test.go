package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmonitor/sysmon/internal/export"
	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// presentedModel returns a model that has already digested one sample.
func presentedModel(t *testing.T, opts Options) Model {
	t.Helper()
	collector := metrics.NewCollector(&stubProvider{}, 5, logger.Noop())
	m := New(collector, export.Disabled(), 500*time.Millisecond, opts, logger.Noop())

	updated, _ := m.Update(sampleMsg{sample: sampleFixture()})
	got, ok := updated.(Model)
	require.True(t, ok)
	return got
}

func TestViewBeforeFirstSampleShowsLoading(t *testing.T) {
	collector := metrics.NewCollector(&stubProvider{}, 5, logger.Noop())
	m := New(collector, export.Disabled(), 500*time.Millisecond, Options{}, logger.Noop())

	view := m.View()

	assert.Contains(t, view, "gathering first sample")
	assert.NotContains(t, view, "Processes")
}

func TestViewShowsAllCards(t *testing.T) {
	view := presentedModel(t, Options{Hostname: "web-01"}).View()

	assert.Contains(t, view, "CPU")
	assert.Contains(t, view, "Memory")
	assert.Contains(t, view, "Disk")
	assert.Contains(t, view, "Network")
	assert.Contains(t, view, "Processes")
	assert.Contains(t, view, "q: quit")
}

func TestViewHeader(t *testing.T) {
	view := presentedModel(t, Options{Hostname: "web-01"}).View()

	assert.Contains(t, view, "sysmon")
	assert.Contains(t, view, "web-01")
	assert.Contains(t, view, "2026-08-23 14:05:09")
	assert.Contains(t, view, "CloudWatch: OFF")
}

func TestViewHeaderShowsExportOn(t *testing.T) {
	view := presentedModel(t, Options{ExportEnabled: true}).View()

	assert.Contains(t, view, "CloudWatch: ON")
}

func TestViewShowsFormattedValues(t *testing.T) {
	view := presentedModel(t, Options{}).View()

	assert.Contains(t, view, "8.00 GB")
	assert.Contains(t, view, "16.00 GB")
	assert.Contains(t, view, "2400 MHz")
	assert.Contains(t, view, "1,234,567")
	assert.Contains(t, view, "/dev/sda1")
}

func TestViewShowsProcessRows(t *testing.T) {
	view := presentedModel(t, Options{}).View()

	assert.Contains(t, view, "postgres")
	assert.Contains(t, view, "4242")
	assert.Contains(t, view, "running")
	assert.Contains(t, view, "sleeping")
}

func TestViewShowsPerCoreRows(t *testing.T) {
	view := presentedModel(t, Options{}).View()

	assert.Contains(t, view, "Core  0")
	assert.Contains(t, view, "Core  3")
}

func TestViewRendersGaugeGlyphs(t *testing.T) {
	view := presentedModel(t, Options{}).View()

	assert.Contains(t, view, "█")
	assert.Contains(t, view, "░")
}

func TestViewShowsFailureNotice(t *testing.T) {
	m := presentedModel(t, Options{})
	m.lastErr = assert.AnError

	view := m.View()

	assert.Contains(t, view, "collection failed")
}
