package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"crypto-news-feed/internal/handler/http/middleware"
	hnews "crypto-news-feed/internal/handler/http/news"
	"crypto-news-feed/internal/handler/http/requestid"
	"crypto-news-feed/internal/handler/http/respond"
	"crypto-news-feed/internal/observability/tracing"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	Logger *slog.Logger
	CORS   middleware.CORSConfig

	// RateLimiter throttles the API and dashboard routes; nil disables it.
	// Probes and /metrics are never throttled.
	RateLimiter *middleware.RateLimiter

	Health    *HealthHandler
	Ready     *ReadyHandler
	News      *hnews.Handler
	Dashboard http.Handler
}

// NewRouter builds the service router.
//
// Middleware order (outermost first): request ID, tracing, logging,
// recovery, metrics, CORS, HEAD-as-GET, then the per-group rate limiter.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(tracing.Middleware)
	r.Use(Logging(logger))
	r.Use(Recover(logger))
	r.Use(MetricsMiddleware)
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.GetHead)

	r.NotFound(respond.NotFound)
	r.MethodNotAllowed(respond.MethodNotAllowed)

	if cfg.Health != nil {
		r.Method(http.MethodGet, "/health", cfg.Health)
	}
	if cfg.Ready != nil {
		r.Method(http.MethodGet, "/ready", cfg.Ready)
	}
	r.Method(http.MethodGet, "/live", &LiveHandler{})
	r.Method(http.MethodGet, "/metrics", MetricsHandler())

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Handler)
		}
		if cfg.News != nil {
			cfg.News.Register(r)
		}
		if cfg.Dashboard != nil {
			r.Method(http.MethodGet, "/dashboard", cfg.Dashboard)
		}
		// Serves the document registered by the docs package.
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	})

	return r
}
