package qket

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Metrics tracks job throughput and latency for a pool.
type Metrics struct {
	mu           sync.RWMutex
	WorkerCount  int
	JobQueueSize int
	JobCount     int64
	FailureCount int64
	TotalJobTime time.Duration

	AverageJobLatency time.Duration
	P95JobLatency     time.Duration
	P99JobLatency     time.Duration
	JobSuccessRate    float64

	// sliding window of recent latencies, in nanoseconds
	latencies  []float64
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]float64, 0, 1000),
		windowSize: 1000,
	}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += duration
	m.JobCount++
	if !success {
		m.FailureCount++
	}

	m.JobSuccessRate = float64(m.JobCount-m.FailureCount) / float64(m.JobCount)
	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)
	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) setQueueSize(n int) {
	m.mu.Lock()
	m.JobQueueSize = n
	m.mu.Unlock()
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.latencies = append(m.latencies, float64(duration))
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := make([]float64, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Float64s(sorted)

	m.P95JobLatency = time.Duration(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	m.P99JobLatency = time.Duration(stat.Quantile(0.99, stat.Empirical, sorted, nil))
}

// ExportMetrics returns a point-in-time copy of the counters.
func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count": m.WorkerCount,
		"queue_size":   m.JobQueueSize,
		"job_count":    m.JobCount,
		"failures":     m.FailureCount,
		"success_rate": m.JobSuccessRate,
		"avg_latency":  m.AverageJobLatency.Microseconds(),
		"p95_latency":  m.P95JobLatency.Microseconds(),
		"p99_latency":  m.P99JobLatency.Microseconds(),
	}
}
