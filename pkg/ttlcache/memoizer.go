package ttlcache

import (
	"time"

	"golang.org/x/sync/singleflight"
)

// MemoizerConfig configures a Memoizer.
type MemoizerConfig[V any] struct {
	// Name labels the memoizer in metrics.
	Name string

	// TTL is how long a computed value is served before recomputation.
	TTL time.Duration

	// Cacheable, when set, decides whether a freshly computed value may be
	// stored. Values it rejects are returned to the caller but not cached.
	Cacheable func(V) bool

	// Clock defaults to SystemClock.
	Clock Clock

	// Metrics defaults to NoOpMetrics.
	Metrics Metrics
}

// Memoizer caches the results of a computation by key for a fixed TTL.
// Concurrent misses on the same key share a single computation.
type Memoizer[V any] struct {
	name      string
	ttl       time.Duration
	cacheable func(V) bool
	cache     *Cache[V]
	group     singleflight.Group
	metrics   Metrics
}

// NewMemoizer creates a Memoizer from cfg.
func NewMemoizer[V any](cfg MemoizerConfig[V]) *Memoizer[V] {
	if cfg.Metrics == nil {
		cfg.Metrics = NoOpMetrics{}
	}
	return &Memoizer[V]{
		name:      cfg.Name,
		ttl:       cfg.TTL,
		cacheable: cfg.Cacheable,
		cache:     New[V](cfg.Clock),
		metrics:   cfg.Metrics,
	}
}

// Do returns the cached value for key when it is still valid. Otherwise it
// calls fn, stores the result (subject to Cacheable) and returns it.
// The second return value reports whether the value came from the cache.
func (m *Memoizer[V]) Do(key string, fn func() V) (V, bool) {
	if v, ok := m.cache.Get(key); ok {
		m.metrics.RecordHit(m.name)
		return v, true
	}
	m.metrics.RecordMiss(m.name)

	res, _, _ := m.group.Do(key, func() (interface{}, error) {
		// another caller may have filled the entry while we waited for the group
		if v, ok := m.cache.Get(key); ok {
			return v, nil
		}
		v := fn()
		if m.cacheable == nil || m.cacheable(v) {
			m.cache.Set(key, v, m.ttl)
			m.metrics.SetEntries(m.name, m.cache.Len())
		}
		return v, nil
	})
	v, _ := res.(V)
	return v, false
}

// Name returns the memoizer name.
func (m *Memoizer[V]) Name() string {
	return m.name
}

// TTL returns the configured time-to-live.
func (m *Memoizer[V]) TTL() time.Duration {
	return m.ttl
}
