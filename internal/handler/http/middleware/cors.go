package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// Validator decides which origins are allowed.
	Validator OriginValidator

	// AllowedMethods is sent in preflight responses.
	AllowedMethods []string

	// AllowedHeaders is sent in preflight responses.
	AllowedHeaders []string

	// ExposedHeaders lists response headers browsers may read.
	ExposedHeaders []string

	// MaxAge is how long, in seconds, browsers may cache a preflight response.
	MaxAge int

	// Logger is optional.
	Logger CORSLogger
}

// DefaultCORSConfig returns a read-only API configuration for origins.
// "*" in origins allows any origin.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		Validator:      NewOriginValidator(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID", "traceparent"},
		ExposedHeaders: []string{"X-Cache-Hit", "X-Request-ID", "X-Trace-Id", "Last-Modified"},
		MaxAge:         3600,
	}
}

// CORS returns middleware that adds CORS headers for allowed origins and
// answers preflight requests. Requests from other origins pass through
// without CORS headers, so browsers block them while non-browser clients are
// unaffected.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	_, wildcard := config.Validator.(AnyOriginValidator)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Same-origin or non-browser request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", WildcardOrigin)
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			if len(config.ExposedHeaders) > 0 {
				w.Header().Set("Access-Control-Expose-Headers", strings.Join(config.ExposedHeaders, ", "))
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
