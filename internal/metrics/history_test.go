package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{
			name:     "positive size",
			size:     10,
			expected: 10,
		},
		{
			name:     "zero size uses default",
			size:     0,
			expected: DefaultHistorySize,
		},
		{
			name:     "negative size uses default",
			size:     -5,
			expected: DefaultHistorySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.size)
			require.NotNil(t, h)
			assert.Equal(t, tt.expected, h.Cap())
			assert.Equal(t, 0, h.Len())
		})
	}
}

func TestHistory_PushAndRead(t *testing.T) {
	h := NewHistory(5)

	h.PushCPU(10)
	h.PushCPU(20)
	h.PushCPU(30)

	got := h.CPU(3)
	require.Len(t, got, 3)

	// Oldest first
	assert.Equal(t, 10.0, got[0])
	assert.Equal(t, 20.0, got[1])
	assert.Equal(t, 30.0, got[2])
}

func TestHistory_CapacityBound(t *testing.T) {
	const capacity = 50
	h := NewHistory(capacity)

	// Push well past capacity; length must never exceed it.
	for i := 0; i < capacity*3; i++ {
		h.PushCPU(float64(i))
		assert.LessOrEqual(t, h.Len(), capacity)
	}
	assert.Equal(t, capacity, h.Len())
}

func TestHistory_EvictsOldest(t *testing.T) {
	const capacity = 50
	h := NewHistory(capacity)

	// capacity+1 pushes: the first value must be gone, the last present.
	for i := 0; i <= capacity; i++ {
		h.PushCPU(float64(i))
	}

	got := h.CPU(capacity)
	require.Len(t, got, capacity)
	assert.NotContains(t, got, 0.0, "oldest value should be evicted")
	assert.Equal(t, 1.0, got[0], "second-oldest becomes the head")
	assert.Equal(t, float64(capacity), got[capacity-1], "newest value present")
}

func TestHistory_CPUAndMemoryIndependent(t *testing.T) {
	h := NewHistory(10)

	h.PushCPU(42)
	h.PushMemory(77)
	h.PushMemory(78)

	cpu := h.CPU(10)
	mem := h.Memory(10)

	require.Len(t, cpu, 1)
	require.Len(t, mem, 2)
	assert.Equal(t, 42.0, cpu[0])
	assert.Equal(t, 77.0, mem[0])
	assert.Equal(t, 78.0, mem[1])
}

func TestHistory_ReadMoreThanStored(t *testing.T) {
	h := NewHistory(10)
	h.PushCPU(1)
	h.PushCPU(2)

	got := h.CPU(100)
	assert.Len(t, got, 2)
}

func TestHistory_ReadEmpty(t *testing.T) {
	h := NewHistory(10)
	assert.Nil(t, h.CPU(5))
	assert.Nil(t, h.Memory(5))
	assert.Nil(t, h.CPU(0))
}

func TestRingBuffer(t *testing.T) {
	t.Run("wraps around", func(t *testing.T) {
		r := newRingBuffer(3)
		r.push(1)
		r.push(2)
		r.push(3)
		r.push(4)

		got := r.getLast(3)
		assert.Equal(t, []float64{2, 3, 4}, got)
	})

	t.Run("partial fill", func(t *testing.T) {
		r := newRingBuffer(5)
		r.push(9)

		got := r.getLast(5)
		assert.Equal(t, []float64{9}, got)
	})

	t.Run("getLast subset", func(t *testing.T) {
		r := newRingBuffer(5)
		for i := 1; i <= 5; i++ {
			r.push(float64(i))
		}

		got := r.getLast(2)
		assert.Equal(t, []float64{4, 5}, got)
	})

	t.Run("zero count", func(t *testing.T) {
		r := newRingBuffer(3)
		r.push(1)
		assert.Nil(t, r.getLast(0))
	})
}

func TestHistory_ConcurrentAccess(t *testing.T) {
	h := NewHistory(100)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				h.PushCPU(float64(base + i))
				h.PushMemory(float64(base + i))
				_ = h.CPU(10)
				_ = h.Memory(10)
			}
		}(g * 100)
	}
	wg.Wait()

	assert.Equal(t, 100, h.Len())
}
