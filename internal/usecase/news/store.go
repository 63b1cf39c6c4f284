// Package news owns the snapshot of news currently being served: the store
// that publishes it, the background refresher that rebuilds it and the read
// use cases the presentation layer runs against it.
package news

import (
	"sync/atomic"
	"time"

	"crypto-news-feed/internal/domain/entity"
	"crypto-news-feed/internal/observability/metrics"
)

// DefaultRefreshInterval is how often the feed is re-fetched when no interval is configured.
const DefaultRefreshInterval = 300 * time.Second

// Store holds the current snapshot. Writers publish whole snapshots with
// Replace; readers get a consistent view from Load without locking.
type Store struct {
	current  atomic.Pointer[entity.Snapshot]
	interval time.Duration
}

// NewStore returns a store holding an empty, never-updated snapshot.
func NewStore(refreshInterval time.Duration) *Store {
	if refreshInterval <= 0 {
		refreshInterval = DefaultRefreshInterval
	}
	s := &Store{interval: refreshInterval}
	s.current.Store(entity.NewSnapshot(refreshInterval))
	return s
}

// Load returns the current snapshot. It never returns nil and the returned
// snapshot must not be modified.
func (s *Store) Load() *entity.Snapshot {
	return s.current.Load()
}

// Replace publishes a new snapshot built from items, stamped with at.
// items is copied so later changes by the caller are not visible to readers.
func (s *Store) Replace(items []entity.NewsRecord, at time.Time) *entity.Snapshot {
	copied := make([]entity.NewsRecord, len(items))
	copy(copied, items)

	snap := &entity.Snapshot{
		Items:           copied,
		LastUpdate:      &at,
		RefreshInterval: s.interval,
	}
	s.current.Store(snap)
	metrics.UpdateSnapshot(len(copied), at)
	return snap
}

// RefreshInterval returns the interval stamped on every snapshot.
func (s *Store) RefreshInterval() time.Duration {
	return s.interval
}
