package services

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// recordingMetrics counts recorder calls so tests can assert on them without
// a real registry
type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int
	timings  map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters: map[string]int{},
		timings:  map[string]int{},
	}
}

func (m *recordingMetrics) IncrementCounter(name string, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

func (m *recordingMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name]++
}

func (m *recordingMetrics) RecordGauge(name string, value float64, tags map[string]string) {}

func (m *recordingMetrics) counter(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
