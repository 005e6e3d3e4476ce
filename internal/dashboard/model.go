// Package dashboard renders live system metrics as a full-screen
// terminal UI. The model ticks on a fixed cadence, runs one collection
// cycle per tick, and repaints from the resulting sample. Collection
// failures degrade the display; they never stop the loop.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sysmonitor/sysmon/internal/export"
	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// DefaultInterval is the sampling cadence. Each cycle runs collection,
// presentation, and any export flush to completion, then waits this
// long before the next one, so wall-clock spacing is work time plus
// the interval.
const DefaultInterval = 500 * time.Millisecond

// trendPoints is how much history the trend rows request per refresh.
const trendPoints = metrics.DefaultHistorySize

// StopRequest asks the dashboard to shut down. The runner sends it when
// a termination signal arrives; the next tick observes it and quits.
type StopRequest struct{}

type (
	tickMsg time.Time

	sampleMsg struct {
		sample metrics.Sample
	}

	collectFailedMsg struct {
		err error
	}
)

// Model drives the dashboard loop: at most one collection in flight,
// a repaint after every completed cycle.
type Model struct {
	collector *metrics.Collector
	exporter  *export.Exporter
	opts      Options
	interval  time.Duration
	log       logger.Logger

	state      RenderState
	haveSample bool
	tick       int
	collecting bool
	stopping   bool
	lastErr    error

	width   int
	height  int
	loading spinner.Model
}

// New builds a dashboard model around a collector and an exporter. A
// nil exporter means export is off. Intervals at or below zero fall
// back to DefaultInterval.
func New(collector *metrics.Collector, exporter *export.Exporter, interval time.Duration, opts Options, log logger.Logger) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Default()
	}
	loading := spinner.New()
	loading.Spinner = spinner.Dot
	loading.Style = lipgloss.NewStyle().Foreground(ColorAccent)
	return Model{
		collector: collector,
		exporter:  exporter,
		opts:      opts.withDefaults(),
		interval:  interval,
		log:       log,
		loading:   loading,
	}
}

// Init starts the loading spinner and the first collection cycle.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Tick, m.collectCmd(1))
}

// Update advances the loop. Quit requests are latched and honored at
// the top of the next tick so an in-flight cycle always completes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuitKey(msg) {
			m.stopping = true
		}
		return m, nil

	case StopRequest:
		m.stopping = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.stopping {
			return m, tea.Quit
		}
		if m.collecting {
			return m, m.schedule(m.interval)
		}
		m.collecting = true
		return m, m.collectCmd(m.tick + 1)

	case sampleMsg:
		m.collecting = false
		m.tick++
		m.lastErr = nil
		m.state = m.presentSample(msg.sample)
		m.haveSample = true
		return m, m.schedule(m.interval)

	case collectFailedMsg:
		m.collecting = false
		m.tick++
		m.lastErr = msg.err
		m.log.Error("collection cycle failed: %v", msg.err)
		return m, m.schedule(2 * m.interval)

	case spinner.TickMsg:
		if m.haveSample {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd
	}

	return m, nil
}

// collectCmd runs one collection cycle off the update loop. The export
// flush happens inside the same cycle, so a slow sink stretches that
// tick instead of overlapping the next one. A panic anywhere in the
// cycle becomes a failure message and the loop keeps going.
func (m Model) collectCmd(tick int) tea.Cmd {
	collector, exporter := m.collector, m.exporter
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = collectFailedMsg{err: fmt.Errorf("cycle %d panicked: %v", tick, r)}
			}
		}()
		ctx := context.Background()
		s := collector.Collect(ctx)
		exporter.MaybeFlush(ctx, s, tick)
		return sampleMsg{sample: s}
	}
}

// schedule arms the next tick after the given pause. Failed cycles
// re-arm at twice the interval to back off a struggling host.
func (m Model) schedule(pause time.Duration) tea.Cmd {
	return tea.Tick(pause, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) presentSample(s metrics.Sample) RenderState {
	hist := m.collector.History()
	return present(s, hist.CPU(trendPoints), hist.Memory(trendPoints), m.opts)
}
