package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Block ramp for one-row trend sparklines, lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderTrend renders a percent history as a one-row sparkline of the
// given width. The series is resampled to fit and mapped onto a fixed
// 0-100 range so the row reads the same as the gauges above it.
func RenderTrend(data []float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	var b strings.Builder
	for _, v := range resample(data, width) {
		b.WriteRune(sparkBlocks[levelFor(v)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// levelFor maps a percent onto a block ramp index.
func levelFor(value float64) int {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	idx := int(value / 100.0 * float64(len(sparkBlocks)))
	if idx >= len(sparkBlocks) {
		idx = len(sparkBlocks) - 1
	}
	return idx
}

// resample fits data to width columns. Downsampling keeps the maximum
// of each bucket so short spikes stay visible; upsampling interpolates
// between neighbors.
func resample(data []float64, width int) []float64 {
	if width <= 0 || len(data) == 0 {
		return nil
	}
	if len(data) == width {
		return data
	}

	result := make([]float64, width)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > width {
		bucket := float64(len(data)) / float64(width)
		for i := 0; i < width; i++ {
			start := int(float64(i) * bucket)
			end := int(float64(i+1) * bucket)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			max := data[start]
			for _, v := range data[start:end] {
				if v > max {
					max = v
				}
			}
			result[i] = max
		}
		return result
	}

	step := float64(len(data)-1) / float64(width-1)
	for i := 0; i < width; i++ {
		pos := float64(i) * step
		lo := int(pos)
		hi := lo + 1
		if hi >= len(data) {
			hi = len(data) - 1
		}
		frac := pos - float64(lo)
		result[i] = data[lo]*(1-frac) + data[hi]*frac
	}
	return result
}
