package ttlcache

import "github.com/prometheus/client_golang/prometheus"

// Metrics receives memoizer cache events.
type Metrics interface {
	RecordHit(cache string)
	RecordMiss(cache string)
	SetEntries(cache string, n int)
}

// NoOpMetrics discards all events.
type NoOpMetrics struct{}

// RecordHit is a no-op implementation.
func (NoOpMetrics) RecordHit(string) {}

// RecordMiss is a no-op implementation.
func (NoOpMetrics) RecordMiss(string) {}

// SetEntries is a no-op implementation.
func (NoOpMetrics) SetEntries(string, int) {}

// PrometheusMetrics exports hit/miss counters and an entry gauge per named cache.
type PrometheusMetrics struct {
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
	entries *prometheus.GaugeVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "response_cache_hits_total",
				Help: "Total memoized response cache hits by cache name",
			},
			[]string{"cache"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "response_cache_misses_total",
				Help: "Total memoized response cache misses by cache name",
			},
			[]string{"cache"},
		),
		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "response_cache_entries",
				Help: "Number of stored entries (including expired) by cache name",
			},
			[]string{"cache"},
		),
	}

	reg.MustRegister(m.hits, m.misses, m.entries)
	return m
}

// RecordHit increments the hit counter for cache.
func (m *PrometheusMetrics) RecordHit(cache string) {
	m.hits.WithLabelValues(cache).Inc()
}

// RecordMiss increments the miss counter for cache.
func (m *PrometheusMetrics) RecordMiss(cache string) {
	m.misses.WithLabelValues(cache).Inc()
}

// SetEntries sets the entry gauge for cache.
func (m *PrometheusMetrics) SetEntries(cache string, n int) {
	m.entries.WithLabelValues(cache).Set(float64(n))
}
