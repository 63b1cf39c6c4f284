// Package ttlcache provides a generic in-memory key/value cache whose entries
// expire after a per-entry time-to-live, plus a Memoizer that wraps a
// computation with such a cache.
//
// Expiry is lazy: an entry past its deadline is treated as absent by Get but
// stays in the map until it is overwritten. Keys are never evicted, so the
// key space should be small and bounded by the caller.
package ttlcache

import (
	"sync"
	"time"
)

// Clock provides the current time. It exists so tests can drive expiry
// without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// entry is a cached value and the instant it stops being valid.
type entry[V any] struct {
	data   V
	expiry time.Time
}

// valid reports whether the entry may still be served at now.
func (e entry[V]) valid(now time.Time) bool {
	return now.Before(e.expiry)
}

// Cache is a concurrency-safe map from string keys to values with a TTL.
// The zero value is not usable; construct with New.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	clock   Clock
}

// New creates an empty cache. A nil clock selects SystemClock.
func New[V any](clock Clock) *Cache[V] {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		clock:   clock,
	}
}

// Get returns the value stored under key if it has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !e.valid(c.clock.Now()) {
		var zero V
		return zero, false
	}
	return e.data, true
}

// Set stores v under key, replacing any previous entry. The entry is valid
// for ttl from now; a non-positive ttl stores an entry that is already expired.
func (c *Cache[V]) Set(key string, v V, ttl time.Duration) {
	expiry := c.clock.Now().Add(ttl)

	c.mu.Lock()
	c.entries[key] = entry[V]{data: v, expiry: expiry}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
