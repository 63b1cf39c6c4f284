package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	_ "crypto-news-feed/docs" // swagger docs
	"crypto-news-feed/internal/config"
	hhttp "crypto-news-feed/internal/handler/http"
	"crypto-news-feed/internal/handler/http/dashboard"
	"crypto-news-feed/internal/handler/http/middleware"
	hnews "crypto-news-feed/internal/handler/http/news"
	"crypto-news-feed/internal/infra/scraper"
	"crypto-news-feed/internal/observability/logging"
	"crypto-news-feed/internal/observability/tracing"
	pkgconfig "crypto-news-feed/internal/pkg/config"
	"crypto-news-feed/internal/usecase/fetch"
	"crypto-news-feed/internal/usecase/news"
	"crypto-news-feed/pkg/ttlcache"
)

// @title           Crypto News Feed API
// @version         1.0
// @description     Serves a periodically refreshed snapshot of crypto news scraped from an RSS feed.
// @BasePath  /

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load(logger, pkgconfig.NewConfigMetrics(nil, config.MetricsComponent))
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Init(tracing.Config{
		Enabled:     cfg.TracingEnabled,
		SampleRatio: cfg.TracingSampleRatio,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components := setupServer(logger, cfg)
	if err := components.Refresher.Start(ctx); err != nil {
		logger.Error("failed to start refresher", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(ctx, cancel, logger, cfg, components)

	tracingCtx, tracingCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer tracingCancel()
	if err := shutdownTracing(tracingCtx); err != nil {
		logger.Error("tracer shutdown failed", slog.Any("error", err))
	}
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler   http.Handler
	Refresher *news.Refresher
}

// setupServer wires the fetch pipeline, the snapshot store and the HTTP router.
func setupServer(logger *slog.Logger, cfg *config.Config) *ServerComponents {
	fetcher := scraper.NewRSSFetcher(scraper.NewHTTPClient(cfg.FetchTimeout), cfg.UserAgent, cfg.RefreshInterval)
	fetchSvc := fetch.NewService(fetcher, cfg.FeedURL, logger)

	store := news.NewStore(cfg.RefreshInterval)
	refresher := news.NewRefresher(fetchSvc, store, news.RefresherConfig{
		Interval:     cfg.RefreshInterval,
		CycleTimeout: cfg.FetchTimeout,
		Logger:       logger,
	})
	reader := news.NewReader(store, cfg.DashboardLimit)

	var cacheMetrics ttlcache.Metrics = ttlcache.NoOpMetrics{}
	if cfg.ResponseCacheTTL > 0 {
		cacheMetrics = ttlcache.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	}

	corsConfig := middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
		logger.Info("rate limiting initialized",
			slog.Float64("rps", cfg.RateLimitRPS),
			slog.Int("burst", cfg.RateLimitBurst))
	} else {
		logger.Warn("rate limiting is DISABLED")
	}

	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Logger:      logger,
		CORS:        corsConfig,
		RateLimiter: limiter,
		Health: &hhttp.HealthHandler{
			Version:   cfg.Version,
			Snapshots: store,
			Refresher: refresher,
			Breaker:   fetcher,
		},
		Ready:     &hhttp.ReadyHandler{Snapshots: store},
		News:      hnews.NewHandler(reader, hnews.NewListingMemoizer(cfg.ResponseCacheTTL, cacheMetrics), logger),
		Dashboard: dashboard.NewHandler(reader, logger),
	})

	logger.Info("news pipeline configured",
		slog.String("feed_url", logging.SanitizeURL(cfg.FeedURL)),
		slog.Duration("refresh_interval", cfg.RefreshInterval),
		slog.Duration("fetch_timeout", cfg.FetchTimeout),
		slog.Duration("response_cache_ttl", cfg.ResponseCacheTTL),
		slog.String("config_file", cfg.File))

	return &ServerComponents{Handler: handler, Refresher: refresher}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down server...", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server failed", slog.Any("error", err))
	}

	// Stop refreshing before the listener goes away so no cycle outlives the process.
	cancel()
	components.Refresher.Stop()
	logger.Debug("refresher stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
