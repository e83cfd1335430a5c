package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates in-process metrics for API requests.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	// Per-route metrics
	routeMetrics map[string]*RouteMetrics

	// Duration samples, newest last (FIFO once full)
	durations    []time.Duration
	maxDurations int
}

// RouteMetrics represents metrics for a specific route.
type RouteMetrics struct {
	requestCount  atomic.Int64
	errorCount    atomic.Int64
	totalDuration atomic.Int64 // milliseconds
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		routeMetrics: make(map[string]*RouteMetrics),
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
}

// RecordRequest records one handled request for the route.
func (m *Metrics) RecordRequest(route string, duration time.Duration, failed bool) {
	m.requestTotal.Add(1)
	if failed {
		m.requestFailed.Add(1)
	}

	rm := m.getRouteMetrics(route)
	rm.requestCount.Add(1)
	if failed {
		rm.errorCount.Add(1)
	}
	rm.totalDuration.Add(duration.Milliseconds())

	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()
}

// RequestTotal returns the total number of requests.
func (m *Metrics) RequestTotal() int64 {
	return m.requestTotal.Load()
}

// RequestFailed returns the total number of failed requests.
func (m *Metrics) RequestFailed() int64 {
	return m.requestFailed.Load()
}

// RouteSnapshot is a point-in-time view of one route's metrics.
type RouteSnapshot struct {
	Requests      int64 `json:"requests"`
	Errors        int64 `json:"errors"`
	AvgDurationMs int64 `json:"avg_duration_ms"`
}

// Snapshot returns a point-in-time view of all per-route metrics.
func (m *Metrics) Snapshot() map[string]RouteSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]RouteSnapshot, len(m.routeMetrics))
	for route, rm := range m.routeMetrics {
		count := rm.requestCount.Load()
		snap := RouteSnapshot{
			Requests: count,
			Errors:   rm.errorCount.Load(),
		}
		if count > 0 {
			snap.AvgDurationMs = rm.totalDuration.Load() / count
		}
		out[route] = snap
	}
	return out
}

// getRouteMetrics gets or creates the metrics bucket for a route.
func (m *Metrics) getRouteMetrics(route string) *RouteMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	rm, ok := m.routeMetrics[route]
	if !ok {
		rm = &RouteMetrics{}
		m.routeMetrics[route] = rm
	}
	return rm
}
