// Package entity defines the core domain types of the news feed service.
// A NewsRecord is one normalized feed item and a Snapshot is the batch of
// records currently being served together with its refresh timestamp.
package entity

import "time"

// NewsRecord is a single normalized article scraped from the feed.
// Every field is a plain string and defaults to "" when the feed lacks it,
// so consumers never have to check for missing values.
type NewsRecord struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	PublishedDate string `json:"published_date"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
}

// Snapshot is the batch of news currently served by the API.
// A Snapshot is never mutated after it has been published; a refresh cycle
// builds a new one and swaps it in as a whole.
type Snapshot struct {
	Items           []NewsRecord
	LastUpdate      *time.Time
	RefreshInterval time.Duration
}

// NewSnapshot returns an empty snapshot that has never been refreshed.
func NewSnapshot(refreshInterval time.Duration) *Snapshot {
	return &Snapshot{
		Items:           []NewsRecord{},
		RefreshInterval: refreshInterval,
	}
}

// Updated reports whether at least one refresh cycle has succeeded.
func (s *Snapshot) Updated() bool {
	return s.LastUpdate != nil
}

// Count returns the number of items in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.Items)
}

// Latest returns the first n items. n larger than the snapshot is clamped to
// the number of available items; negative n yields an empty slice.
func (s *Snapshot) Latest(n int) []NewsRecord {
	if n <= 0 {
		return []NewsRecord{}
	}
	if n > len(s.Items) {
		n = len(s.Items)
	}
	return s.Items[:n]
}
