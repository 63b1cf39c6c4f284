// Package logging builds the service's log/slog loggers.
//
// Output goes to stdout as JSON unless LOG_FORMAT=text; LOG_LEVEL selects
// the minimum level. Request handlers attach the request ID with
// WithRequestID, the refresher's cron scheduler logs through NewCronLogger,
// and anything that may carry credentials (errors, feed URLs) passes through
// SanitizeError or SanitizeURL first.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//	    logging.WithRequestID(r.Context(), logger).Info("serving snapshot")
//	}
package logging
