package metrics

import "time"

// RecordFeedFetch records the result of a single feed fetch.
// items is only used when the fetch succeeded.
func RecordFeedFetch(success bool, duration time.Duration, items int) {
	FeedFetchDuration.Observe(duration.Seconds())
	if !success {
		FeedFetchTotal.WithLabelValues("failure").Inc()
		return
	}
	FeedFetchTotal.WithLabelValues("success").Inc()
	FeedItemsFetched.Set(float64(items))
}

// RecordRefreshCycle records a finished refresh cycle.
// replaced reports whether the cycle published a new snapshot.
func RecordRefreshCycle(replaced bool, duration time.Duration) {
	outcome := "kept"
	if replaced {
		outcome = "replaced"
	}
	RefreshCyclesTotal.WithLabelValues(outcome).Inc()
	RefreshCycleDuration.Observe(duration.Seconds())
}

// SetRefreshFetching sets the refresh state gauge.
func SetRefreshFetching(fetching bool) {
	if fetching {
		RefreshState.Set(1)
		return
	}
	RefreshState.Set(0)
}

// UpdateSnapshot records the size and timestamp of a newly published snapshot.
func UpdateSnapshot(items int, at time.Time) {
	SnapshotItems.Set(float64(items))
	SnapshotLastUpdate.Set(float64(at.Unix()))
}
