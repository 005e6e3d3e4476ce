package metrics

import "sync"

// DefaultHistorySize is the number of samples retained per metric. At the
// default tick cadence this covers roughly the last 25 seconds.
const DefaultHistorySize = 50

// History retains rolling windows of past overall CPU and memory
// percentages for sparkline rendering. It is safe for concurrent use;
// current-value panels never depend on it.
type History struct {
	mu   sync.RWMutex
	size int
	cpu  *ringBuffer
	mem  *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history tracker with the specified capacity.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size: size,
		cpu:  newRingBuffer(size),
		mem:  newRingBuffer(size),
	}
}

// PushCPU records an overall CPU percentage, evicting the oldest value
// once the buffer is full.
func (h *History) PushCPU(percent float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cpu.push(percent)
}

// PushMemory records an overall memory percentage, evicting the oldest
// value once the buffer is full.
func (h *History) PushMemory(percent float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mem.push(percent)
}

// CPU returns up to count of the most recent CPU values, oldest first.
func (h *History) CPU(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cpu.getLast(count)
}

// Memory returns up to count of the most recent memory values, oldest
// first.
func (h *History) Memory(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mem.getLast(count)
}

// Len returns the number of CPU values currently stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cpu.count
}

// Cap returns the buffer capacity.
func (h *History) Cap() int {
	return h.size
}

// newRingBuffer creates a ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the most recent value is
	// at head-1; take count values ending there.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		idx := (start + i) % r.size
		result[i] = r.data[idx]
	}

	return result
}
