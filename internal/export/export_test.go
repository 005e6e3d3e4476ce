package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// fakeSink records every Put call and can fail selected calls.
type fakeSink struct {
	calls [][]Point
	errs  []error // popped per call; nil entries succeed
}

func (f *fakeSink) Put(ctx context.Context, points []Point) error {
	// Copy: the exporter hands out sub-slices of its batch.
	chunk := make([]Point, len(points))
	copy(chunk, points)
	f.calls = append(f.calls, chunk)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return err
	}
	return nil
}

func sampleWithDisks(n int) metrics.Sample {
	s := metrics.Sample{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CPU:       metrics.CPUSample{Percent: 42.0},
		Memory:    metrics.MemorySample{Percent: 61.5},
		Network:   metrics.NetworkSample{BytesSent: 1111, BytesRecv: 2222},
	}
	for i := 0; i < n; i++ {
		s.Disks = append(s.Disks, metrics.DiskUsage{
			Device:     "/dev/sd" + string(rune('a'+i%26)),
			Mountpoint: "/mnt",
			Percent:    float64(i),
		})
	}
	return s
}

func TestBuildBatch(t *testing.T) {
	s := sampleWithDisks(2)
	batch := BuildBatch(s)

	require.Len(t, batch, 6)

	assert.Equal(t, "CPUUtilization", batch[0].Name)
	assert.Equal(t, UnitPercent, batch[0].Unit)
	assert.InDelta(t, 42.0, batch[0].Value, 0.001)
	assert.Equal(t, s.Timestamp, batch[0].Time)

	assert.Equal(t, "MemoryUtilization", batch[1].Name)
	assert.InDelta(t, 61.5, batch[1].Value, 0.001)

	assert.Equal(t, "DiskUtilization", batch[2].Name)
	assert.Equal(t, "/dev/sda", batch[2].Dimensions["Device"])
	assert.Equal(t, "/mnt", batch[2].Dimensions["MountPoint"])
	assert.Equal(t, "DiskUtilization", batch[3].Name)

	assert.Equal(t, "NetworkBytesSent", batch[4].Name)
	assert.Equal(t, UnitBytes, batch[4].Unit)
	assert.InDelta(t, 1111, batch[4].Value, 0.001)

	assert.Equal(t, "NetworkBytesReceived", batch[5].Name)
	assert.InDelta(t, 2222, batch[5].Value, 0.001)
}

func TestBuildBatch_NoDisks(t *testing.T) {
	batch := BuildBatch(sampleWithDisks(0))

	require.Len(t, batch, 4)
	for _, p := range batch {
		assert.NotEqual(t, "DiskUtilization", p.Name)
	}
}

func TestBuildBatch_ZeroTimestampDefaultsToNow(t *testing.T) {
	s := sampleWithDisks(0)
	s.Timestamp = time.Time{}

	batch := BuildBatch(s)
	require.NotEmpty(t, batch)
	assert.WithinDuration(t, time.Now(), batch[0].Time, 5*time.Second)
}

func TestExporter_FirstFlushAtThreshold(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, 120, logger.Noop())
	s := sampleWithDisks(1)

	// Ticks 1..119 must not flush.
	for tick := 1; tick < 120; tick++ {
		e.MaybeFlush(context.Background(), s, tick)
	}
	assert.Empty(t, sink.calls, "no flush before tick 120")

	e.MaybeFlush(context.Background(), s, 120)
	assert.Len(t, sink.calls, 1, "first flush exactly at tick 120")

	e.MaybeFlush(context.Background(), s, 240)
	assert.Len(t, sink.calls, 2, "second flush at the next multiple")
}

func TestExporter_TickGating(t *testing.T) {
	tests := []struct {
		name    string
		every   int
		tick    int
		flushes bool
	}{
		{name: "below threshold", every: 10, tick: 9, flushes: false},
		{name: "at threshold", every: 10, tick: 10, flushes: true},
		{name: "between multiples", every: 10, tick: 15, flushes: false},
		{name: "second multiple", every: 10, tick: 20, flushes: true},
		{name: "zero tick", every: 10, tick: 0, flushes: false},
		{name: "negative tick", every: 10, tick: -10, flushes: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			e := New(sink, tt.every, logger.Noop())

			e.MaybeFlush(context.Background(), sampleWithDisks(0), tt.tick)

			if tt.flushes {
				assert.Len(t, sink.calls, 1)
			} else {
				assert.Empty(t, sink.calls)
			}
		})
	}
}

func TestExporter_Disabled(t *testing.T) {
	t.Run("nil sink", func(t *testing.T) {
		e := New(nil, 120, logger.Noop())
		assert.False(t, e.Enabled())
		// Must be safe to call.
		e.MaybeFlush(context.Background(), sampleWithDisks(1), 120)
	})

	t.Run("zero threshold", func(t *testing.T) {
		sink := &fakeSink{}
		e := New(sink, 0, logger.Noop())
		assert.False(t, e.Enabled())

		for tick := 1; tick <= 500; tick++ {
			e.MaybeFlush(context.Background(), sampleWithDisks(1), tick)
		}
		assert.Empty(t, sink.calls, "disabled exporter never calls the sink")
	})

	t.Run("Disabled constructor", func(t *testing.T) {
		e := Disabled()
		assert.False(t, e.Enabled())
		assert.Equal(t, 0, e.Every())
	})
}

func TestExporter_ChunksAtSinkLimit(t *testing.T) {
	// 30 disks plus the 4 fixed points = 34 points = chunks of 20 and 14.
	sink := &fakeSink{}
	e := New(sink, 1, logger.Noop())

	e.MaybeFlush(context.Background(), sampleWithDisks(30), 1)

	require.Len(t, sink.calls, 2)
	assert.Len(t, sink.calls[0], 20)
	assert.Len(t, sink.calls[1], 14)

	for _, call := range sink.calls {
		assert.LessOrEqual(t, len(call), MaxPointsPerCall)
	}
}

func TestExporter_SmallBatchSingleCall(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, 1, logger.Noop())

	e.MaybeFlush(context.Background(), sampleWithDisks(3), 1)

	require.Len(t, sink.calls, 1)
	assert.Len(t, sink.calls[0], 7)
}

func TestExporter_FailedFlushDoesNotBlockLater(t *testing.T) {
	sink := &fakeSink{errs: []error{errors.New("throttled")}}
	buf := logger.NewBufferLogger()
	e := New(sink, 10, buf)
	s := sampleWithDisks(1)

	e.MaybeFlush(context.Background(), s, 10)
	require.Len(t, sink.calls, 1, "failed cycle still attempted")
	assert.True(t, buf.HasLevel("debug"), "failure logged at debug only")

	e.MaybeFlush(context.Background(), s, 20)
	assert.Len(t, sink.calls, 2, "next cycle attempts again after a failure")
}

func TestExporter_ChunkFailureAbortsCycle(t *testing.T) {
	// First chunk fails; the remainder of that cycle is dropped, the next
	// cycle starts fresh.
	sink := &fakeSink{errs: []error{errors.New("auth expired")}}
	e := New(sink, 1, logger.Noop())

	e.MaybeFlush(context.Background(), sampleWithDisks(30), 1)
	assert.Len(t, sink.calls, 1, "second chunk skipped after first fails")

	e.MaybeFlush(context.Background(), sampleWithDisks(30), 2)
	assert.Len(t, sink.calls, 3, "next cycle sends both chunks")
}

func TestEveryFromInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expect   int
	}{
		{name: "default tick", interval: 500 * time.Millisecond, expect: 120},
		{name: "one second", interval: time.Second, expect: 60},
		{name: "two seconds", interval: 2 * time.Second, expect: 30},
		{name: "zero falls back to default tick", interval: 0, expect: 120},
		{name: "interval above target clamps to one", interval: 90 * time.Second, expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, EveryFromInterval(tt.interval))
		})
	}
}

func TestExporter_NilReceiverSafe(t *testing.T) {
	var e *Exporter
	assert.False(t, e.Enabled())
	e.MaybeFlush(context.Background(), sampleWithDisks(1), 120)
}
