// Package config holds the application configuration.
//
// Values are layered: built-in defaults, then an optional YAML or TOML file
// named by CONFIG_FILE, then environment variables. Each value is validated
// on its own and an invalid value never stops the process: the previous
// layer's value is kept, a warning is logged and the fallback is counted in
// the crypto_news_config_* metrics.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crypto-news-feed/internal/domain/entity"
	pkgconfig "crypto-news-feed/internal/pkg/config"
)

// DefaultFeedURL is the Google News search feed for crypto topics.
const DefaultFeedURL = "https://news.google.com/rss/search?q=cryptocurrency+OR+bitcoin+OR+crypto&hl=en-US&gl=US&ceid=US:en"

// MetricsComponent prefixes the configuration metrics.
const MetricsComponent = "crypto_news"

// Config is the complete runtime configuration of the service.
type Config struct {
	// Port the HTTP server listens on (PORT). Range 1-65535. Default 10000.
	Port int

	// FeedURL is the RSS feed to scrape (FEED_URL). Must be http(s).
	FeedURL string

	// UserAgent sent with feed requests (FEED_USER_AGENT).
	UserAgent string

	// FetchTimeout bounds a single feed request (FETCH_TIMEOUT).
	// 0 leaves the HTTP client without a timeout. Default 30s, max 5m.
	FetchTimeout time.Duration

	// RefreshInterval between refresh cycles (REFRESH_INTERVAL).
	// Range 1s-24h. Default 300s.
	RefreshInterval time.Duration

	// ResponseCacheTTL for memoized list responses (RESPONSE_CACHE_TTL).
	// 0 disables memoization. Default 300s, max 24h.
	ResponseCacheTTL time.Duration

	// DashboardLimit caps the dashboard news list (LATEST_DEFAULT_COUNT).
	// 0 shows every item.
	DashboardLimit int

	// CORSAllowedOrigins (CORS_ALLOWED_ORIGINS, comma separated). Default "*".
	CORSAllowedOrigins []string

	// RateLimitRPS is the per-client request rate (RATE_LIMIT_RPS). 0 disables limiting.
	RateLimitRPS float64

	// RateLimitBurst is the per-client burst size (RATE_LIMIT_BURST). Range 1-10000.
	RateLimitBurst int

	// ShutdownTimeout for graceful HTTP shutdown (SHUTDOWN_TIMEOUT). Range 1s-5m.
	ShutdownTimeout time.Duration

	// Version reported by /health (VERSION).
	Version string

	// TracingEnabled installs the OpenTelemetry SDK (TRACING_ENABLED).
	TracingEnabled bool

	// TracingSampleRatio of root traces to sample (TRACING_SAMPLE_RATIO). Range 0-1.
	TracingSampleRatio float64

	// File is the config file that was applied, if any (CONFIG_FILE).
	File string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Port:               10000,
		FeedURL:            DefaultFeedURL,
		UserAgent:          "CryptoNewsFeedBot/1.0",
		FetchTimeout:       30 * time.Second,
		RefreshInterval:    300 * time.Second,
		ResponseCacheTTL:   300 * time.Second,
		DashboardLimit:     0,
		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       0,
		RateLimitBurst:     20,
		ShutdownTimeout:    10 * time.Second,
		Version:            "dev",
		TracingEnabled:     false,
		TracingSampleRatio: 1.0,
	}
}

func validPort(v int) error                   { return pkgconfig.ValidateIntRange(v, 1, 65535) }
func validFetchTimeout(d time.Duration) error { return pkgconfig.ValidateDuration(d, 0, 5*time.Minute) }
func validCacheTTL(d time.Duration) error     { return pkgconfig.ValidateDuration(d, 0, 24*time.Hour) }
func validDashboardLimit(v int) error         { return pkgconfig.ValidateIntRange(v, 0, 10000) }
func validBurst(v int) error                  { return pkgconfig.ValidateIntRange(v, 1, 10000) }
func validRPS(v float64) error                { return pkgconfig.ValidateFloatRange(v, 0, 10000) }
func validRatio(v float64) error              { return pkgconfig.ValidateFloatRange(v, 0, 1) }

func validRefreshInterval(d time.Duration) error {
	if err := pkgconfig.ValidateEvery(d); err != nil {
		return err
	}
	return pkgconfig.ValidateDuration(d, time.Second, 24*time.Hour)
}

func validShutdownTimeout(d time.Duration) error {
	return pkgconfig.ValidateDuration(d, time.Second, 5*time.Minute)
}

func validOrigins(origins []string) error {
	if len(origins) == 0 {
		return errors.New("at least one origin is required")
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	check := func(field string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	check("port", validPort(c.Port))
	check("feed url", entity.ValidateFeedURL(c.FeedURL))
	check("user agent", pkgconfig.ValidateNonEmpty(c.UserAgent))
	check("fetch timeout", validFetchTimeout(c.FetchTimeout))
	check("refresh interval", validRefreshInterval(c.RefreshInterval))
	check("response cache ttl", validCacheTTL(c.ResponseCacheTTL))
	check("dashboard limit", validDashboardLimit(c.DashboardLimit))
	check("cors allowed origins", validOrigins(c.CORSAllowedOrigins))
	check("rate limit rps", validRPS(c.RateLimitRPS))
	check("rate limit burst", validBurst(c.RateLimitBurst))
	check("shutdown timeout", validShutdownTimeout(c.ShutdownTimeout))
	check("tracing sample ratio", validRatio(c.TracingSampleRatio))

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the listen address on all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// RateLimitEnabled reports whether per-client rate limiting is on.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

type layeredLoader struct {
	sources  []pkgconfig.Source
	logger   *slog.Logger
	metrics  *pkgconfig.ConfigMetrics
	fallback bool
}

func (l *layeredLoader) reject(field string, src pkgconfig.Source, warning string) {
	l.fallback = true
	if l.metrics != nil {
		l.metrics.RecordFallback(field, src.Name())
	}
	l.logger.Warn("Configuration fallback applied",
		slog.String("field", field),
		slog.String("source", src.Name()),
		slog.String("warning", warning))
}

// apply overlays key from every source in order onto dst.
func apply[T any](l *layeredLoader, field, key string, dst *T, parse pkgconfig.Parser[T], validate func(T) error) {
	for _, src := range l.sources {
		r := pkgconfig.Load(src, key, *dst, parse, validate)
		if r.FallbackApplied {
			l.reject(field, src, r.Warning)
			continue
		}
		if r.Set {
			*dst = r.Value
		}
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the
// environment. It never fails because of a bad value; metrics may be nil.
func Load(logger *slog.Logger, metrics *pkgconfig.ConfigMetrics) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := DefaultConfig()
	env := pkgconfig.EnvSource{}
	l := &layeredLoader{logger: logger, metrics: metrics}

	if path, ok := env.Lookup("CONFIG_FILE"); ok {
		file, err := pkgconfig.LoadFile(path)
		if err != nil {
			l.reject("config_file", env, err.Error())
		} else {
			l.sources = append(l.sources, file)
			cfg.File = path
		}
	}
	l.sources = append(l.sources, env)

	apply(l, "port", "PORT", &cfg.Port, pkgconfig.ParseInt, validPort)
	apply(l, "feed_url", "FEED_URL", &cfg.FeedURL, pkgconfig.ParseString, entity.ValidateFeedURL)
	apply(l, "user_agent", "FEED_USER_AGENT", &cfg.UserAgent, pkgconfig.ParseString, pkgconfig.ValidateNonEmpty)
	apply(l, "fetch_timeout", "FETCH_TIMEOUT", &cfg.FetchTimeout, pkgconfig.ParseDuration, validFetchTimeout)
	apply(l, "refresh_interval", "REFRESH_INTERVAL", &cfg.RefreshInterval, pkgconfig.ParseDuration, validRefreshInterval)
	apply(l, "response_cache_ttl", "RESPONSE_CACHE_TTL", &cfg.ResponseCacheTTL, pkgconfig.ParseDuration, validCacheTTL)
	apply(l, "dashboard_limit", "LATEST_DEFAULT_COUNT", &cfg.DashboardLimit, pkgconfig.ParseInt, validDashboardLimit)
	apply(l, "cors_allowed_origins", "CORS_ALLOWED_ORIGINS", &cfg.CORSAllowedOrigins, pkgconfig.ParseList, validOrigins)
	apply(l, "rate_limit_rps", "RATE_LIMIT_RPS", &cfg.RateLimitRPS, pkgconfig.ParseFloat, validRPS)
	apply(l, "rate_limit_burst", "RATE_LIMIT_BURST", &cfg.RateLimitBurst, pkgconfig.ParseInt, validBurst)
	apply(l, "shutdown_timeout", "SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout, pkgconfig.ParseDuration, validShutdownTimeout)
	apply(l, "version", "VERSION", &cfg.Version, pkgconfig.ParseString, pkgconfig.ValidateNonEmpty)
	apply(l, "tracing_enabled", "TRACING_ENABLED", &cfg.TracingEnabled, pkgconfig.ParseBool, nil)
	apply(l, "tracing_sample_ratio", "TRACING_SAMPLE_RATIO", &cfg.TracingSampleRatio, pkgconfig.ParseFloat, validRatio)

	if metrics != nil {
		metrics.SetFallbackActive(l.fallback)
		metrics.RecordLoadTimestamp()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
