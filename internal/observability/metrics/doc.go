// Package metrics provides the Prometheus business metrics of the news feed.
//
// It covers the feed fetch, the refresh cycle and the published snapshot.
// HTTP request metrics live with the HTTP middleware in internal/handler/http.
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "crypto-news-feed/internal/observability/metrics"
//
//	start := time.Now()
//	items, err := fetcher.Fetch(ctx, url)
//	metrics.RecordFeedFetch(err == nil, time.Since(start), len(items))
package metrics
