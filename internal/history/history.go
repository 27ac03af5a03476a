// Package history stores bounded, per-series metric samples for graphing.
//
// Each series is a fixed-capacity ring buffer of (timestamp, value)
// samples in arrival order. When a series is full the oldest sample is
// overwritten. Readers get copies, never the backing storage.
package history

import (
	"sort"
	"sync"
	"time"
)

// DefaultCapacity is the number of samples retained per series when no
// explicit capacity is configured.
const DefaultCapacity = 100

// Well-known series names fed by the dashboard. The temperature series
// feed the graphs; the usage series feed the sparklines.
const (
	SeriesCPU      = "cpu"
	SeriesGPU      = "gpu"
	SeriesCPUUsage = "cpu_usage"
	SeriesMemory   = "memory"
)

// Sample is a single observation of a metric.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Unix returns the sample timestamp as fractional seconds since the epoch.
func (s Sample) Unix() float64 {
	return float64(s.Timestamp.UnixNano()) / float64(time.Second)
}

// Store owns every series. It is safe for concurrent use: the dashboard
// appends from the event loop while collection runs on another goroutine.
type Store struct {
	mu       sync.RWMutex
	capacity int
	series   map[string]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer of samples.
type ringBuffer struct {
	data  []Sample
	head  int
	count int
}

// NewStore creates a store retaining at most capacity samples per series.
// Names listed up front exist (empty) from the start; others are created on
// first append. A non-positive capacity falls back to DefaultCapacity.
func NewStore(capacity int, names ...string) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		capacity: capacity,
		series:   make(map[string]*ringBuffer),
	}
	for _, name := range names {
		s.series[name] = newRingBuffer(capacity)
	}
	return s
}

// Append records value for the named series. A nil value means the reading
// was unavailable this cycle and is dropped without touching the series.
func (s *Store) Append(name string, ts time.Time, value *float64) {
	if value == nil {
		return
	}
	s.AppendValue(name, ts, *value)
}

// AppendValue records a present reading for the named series.
func (s *Store) AppendValue(name string, ts time.Time, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rb, ok := s.series[name]
	if !ok {
		rb = newRingBuffer(s.capacity)
		s.series[name] = rb
	}
	rb.push(Sample{Timestamp: ts, Value: value})
}

// Snapshot returns the series samples oldest first. The returned slice is a
// copy. Unknown series yield nil.
func (s *Store) Snapshot(name string) []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rb, ok := s.series[name]
	if !ok {
		return nil
	}
	return rb.getAll()
}

// Size returns the number of samples currently held for the series.
func (s *Store) Size(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rb, ok := s.series[name]
	if !ok {
		return 0
	}
	return rb.count
}

// IsEmpty reports whether the series holds no samples.
func (s *Store) IsEmpty(name string) bool {
	return s.Size(name) == 0
}

// Capacity returns the per-series sample limit.
func (s *Store) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// Names returns the known series names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series))
	for name := range s.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resize changes the per-series capacity, keeping the newest samples when
// shrinking. Used when max_history_points changes on config reload.
func (s *Store) Resize(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if capacity == s.capacity {
		return
	}
	for name, rb := range s.series {
		resized := newRingBuffer(capacity)
		for _, sample := range rb.getLast(capacity) {
			resized.push(sample)
		}
		s.series[name] = resized
	}
	s.capacity = capacity
}

// Clear empties the named series but keeps it known.
func (s *Store) Clear(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.series[name]; ok {
		s.series[name] = newRingBuffer(s.capacity)
	}
}

// ClearAll empties every series.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.series {
		s.series[name] = newRingBuffer(s.capacity)
	}
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{data: make([]Sample, size)}
}

// push adds a sample, overwriting the oldest one when full.
func (r *ringBuffer) push(sample Sample) {
	r.data[r.head] = sample
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// getLast returns the last count samples in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []Sample {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	size := len(r.data)
	result := make([]Sample, count)

	// head is the next write position, so the newest sample sits at head-1.
	start := (r.head - count + size) % size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%size]
	}
	return result
}

func (r *ringBuffer) getAll() []Sample {
	return r.getLast(r.count)
}
