package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track calls to the upstream RSS feed
var (
	// FeedFetchTotal counts feed fetch attempts by result ("success" or "failure")
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_total",
			Help: "Total number of feed fetch attempts by status",
		},
		[]string{"status"},
	)

	// FeedFetchDuration measures how long a single feed fetch takes
	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Duration of feed fetch operations in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// FeedItemsFetched is the number of items returned by the most recent successful fetch
	FeedItemsFetched = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_items_fetched",
			Help: "Number of items returned by the last successful feed fetch",
		},
	)
)

// Refresh metrics track the background refresh loop and the served snapshot
var (
	// RefreshCyclesTotal counts refresh cycles by outcome ("replaced" or "kept")
	RefreshCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_refresh_cycles_total",
			Help: "Total number of refresh cycles by outcome",
		},
		[]string{"outcome"},
	)

	// RefreshCycleDuration measures a whole refresh cycle
	RefreshCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_refresh_cycle_duration_seconds",
			Help:    "Duration of refresh cycles in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// RefreshState is 1 while a cycle is fetching and 0 when idle
	RefreshState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "news_refresh_state",
			Help: "Refresh loop state (0=idle, 1=fetching)",
		},
	)

	// SnapshotItems is the number of items in the published snapshot
	SnapshotItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "news_snapshot_items",
			Help: "Number of news items in the currently served snapshot",
		},
	)

	// SnapshotLastUpdate is the Unix time of the last snapshot replacement
	SnapshotLastUpdate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "news_snapshot_last_update_timestamp_seconds",
			Help: "Unix timestamp of the last successful snapshot replacement",
		},
	)
)
