// Package observability groups the service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog construction, request-scoped loggers, error and URL sanitization
//   - metrics: prometheus collectors for feed fetches, refresh cycles and the snapshot
//   - tracing: OpenTelemetry provider setup and HTTP server spans
//
// Example usage:
//
//	import (
//	    "crypto-news-feed/internal/observability/logging"
//	    "crypto-news-feed/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordFeedFetch(true, 120*time.Millisecond, 25)
//	}
package observability
