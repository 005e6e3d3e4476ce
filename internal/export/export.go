// Package export forwards a small subset of each sample to a remote
// metric sink on a much coarser cadence than the render loop. Export is
// strictly best-effort: no failure here may ever surface to the loop.
package export

import (
	"context"
	"math"
	"time"

	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// MaxPointsPerCall is the sink protocol limit on points per request.
const MaxPointsPerCall = 20

// DefaultTargetInterval is the wall-clock cadence exports aim for. The
// tick threshold is derived from it, so a reconfigured tick interval
// keeps exports near one minute apart.
const DefaultTargetInterval = 60 * time.Second

// Units understood by the sink.
const (
	UnitPercent = "Percent"
	UnitBytes   = "Bytes"
	UnitCount   = "Count"
)

// Point is one named numeric datum with an optional set of dimension tags.
type Point struct {
	Name       string
	Value      float64
	Unit       string
	Time       time.Time
	Dimensions map[string]string
}

// Sink accepts batches of points. Batches passed to Put never exceed
// MaxPointsPerCall entries.
type Sink interface {
	Put(ctx context.Context, points []Point) error
}

// Exporter gates flushes to every Nth tick and chunks batches to the sink
// limit. A disabled exporter (nil sink) is valid and does nothing.
type Exporter struct {
	sink    Sink
	every   int
	enabled bool
	log     logger.Logger
}

// New creates an exporter that flushes every `every` ticks. A nil sink or
// a non-positive threshold yields a disabled exporter.
func New(sink Sink, every int, log logger.Logger) *Exporter {
	if log == nil {
		log = logger.Default()
	}
	return &Exporter{
		sink:    sink,
		every:   every,
		enabled: sink != nil && every > 0,
		log:     log,
	}
}

// Disabled returns an exporter whose MaybeFlush is always a no-op.
func Disabled() *Exporter {
	return New(nil, 0, logger.Noop())
}

// Enabled reports whether this exporter will ever call the sink.
func (e *Exporter) Enabled() bool {
	return e != nil && e.enabled
}

// Every returns the tick threshold between flushes, 0 when disabled.
func (e *Exporter) Every() int {
	if !e.Enabled() {
		return 0
	}
	return e.every
}

// EveryFromInterval derives the tick threshold from the tick interval so
// the effective export cadence stays near DefaultTargetInterval
// (500ms ticks give 120).
func EveryFromInterval(interval time.Duration) int {
	if interval <= 0 {
		return int(DefaultTargetInterval / (500 * time.Millisecond))
	}
	every := int(math.Round(float64(DefaultTargetInterval) / float64(interval)))
	if every < 1 {
		every = 1
	}
	return every
}

// MaybeFlush sends the export subset of s when tick (1-based) lands on
// the flush threshold. Sink errors abort the current cycle, are logged at
// debug, and never propagate; the next cycle tries again.
func (e *Exporter) MaybeFlush(ctx context.Context, s metrics.Sample, tick int) {
	if !e.Enabled() {
		return
	}
	if tick <= 0 || tick%e.every != 0 {
		return
	}

	batch := BuildBatch(s)
	for start := 0; start < len(batch); start += MaxPointsPerCall {
		end := start + MaxPointsPerCall
		if end > len(batch) {
			end = len(batch)
		}
		if err := e.sink.Put(ctx, batch[start:end]); err != nil {
			e.log.Debug("metric flush failed at tick %d: %v", tick, err)
			return
		}
	}
	e.log.Debug("flushed %d points at tick %d", len(batch), tick)
}

// BuildBatch assembles the export subset of a sample: overall CPU and
// memory percent, network byte counters, and one utilization point per
// disk tagged with its device and mountpoint.
func BuildBatch(s metrics.Sample) []Point {
	ts := s.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	points := []Point{
		{Name: "CPUUtilization", Value: s.CPU.Percent, Unit: UnitPercent, Time: ts},
		{Name: "MemoryUtilization", Value: s.Memory.Percent, Unit: UnitPercent, Time: ts},
	}

	for _, d := range s.Disks {
		points = append(points, Point{
			Name:  "DiskUtilization",
			Value: d.Percent,
			Unit:  UnitPercent,
			Time:  ts,
			Dimensions: map[string]string{
				"Device":     d.Device,
				"MountPoint": d.Mountpoint,
			},
		})
	}

	points = append(points,
		Point{Name: "NetworkBytesSent", Value: float64(s.Network.BytesSent), Unit: UnitBytes, Time: ts},
		Point{Name: "NetworkBytesReceived", Value: float64(s.Network.BytesRecv), Unit: UnitBytes, Time: ts},
	)

	return points
}
