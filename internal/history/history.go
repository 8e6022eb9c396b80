// Package history keeps the most recent samples in a fixed-capacity ring buffer.
package history

import (
	"sync"

	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// DefaultCapacity is the number of samples retained (one minute at 1s).
const DefaultCapacity = 60

// History is a thread-safe, fixed-capacity store of samples in insertion
// order. When full, each append overwrites the oldest sample.
//
// A single writer (the poller) appends; readers get copies.
type History struct {
	mu    sync.RWMutex
	data  []metrics.Sample
	head  int // next write position
	count int
}

// New creates a history holding up to capacity samples.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		data: make([]metrics.Sample, capacity),
	}
}

// Append adds s as the newest sample, evicting the oldest when full.
func (h *History) Append(s metrics.Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.data[h.head] = s
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Window returns the last n samples in chronological order (oldest first).
// Returns fewer if not enough history is available.
func (h *History) Window(n int) []metrics.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastLocked(n)
}

// All returns every retained sample, oldest first.
func (h *History) All() []metrics.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastLocked(h.count)
}

// Last returns the newest sample.
func (h *History) Last() (metrics.Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.count == 0 {
		return metrics.Sample{}, false
	}
	size := len(h.data)
	return h.data[(h.head-1+size)%size], true
}

// Len returns the number of samples currently stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Cap returns the maximum number of samples retained.
func (h *History) Cap() int {
	return len(h.data)
}

// lastLocked must be called with h.mu held.
func (h *History) lastLocked(n int) []metrics.Sample {
	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	size := len(h.data)
	out := make([]metrics.Sample, n)

	// head is the next write slot, so the newest sample sits at head-1
	start := (h.head - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = h.data[(start+i)%size]
	}
	return out
}
