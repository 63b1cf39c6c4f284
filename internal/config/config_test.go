package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconfig "crypto-news-feed/internal/pkg/config"
)

var configKeys = []string{
	"CONFIG_FILE", "PORT", "FEED_URL", "FEED_USER_AGENT", "FETCH_TIMEOUT",
	"REFRESH_INTERVAL", "RESPONSE_CACHE_TTL", "LATEST_DEFAULT_COUNT",
	"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"SHUTDOWN_TIMEOUT", "VERSION", "TRACING_ENABLED", "TRACING_SAMPLE_RATIO",
}

// clearEnv blanks every key so the host environment cannot leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func newTestMetrics() *pkgconfig.ConfigMetrics {
	return pkgconfig.NewConfigMetrics(prometheus.NewRegistry(), MetricsComponent)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, 300*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 300*time.Second, cfg.ResponseCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RateLimitEnabled())
	assert.Equal(t, "0.0.0.0:10000", cfg.Addr())
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	cfg.FeedURL = "ftp://example.com/rss"
	cfg.RefreshInterval = 0
	cfg.TracingSampleRatio = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "feed url")
	assert.Contains(t, err.Error(), "refresh interval")
	assert.Contains(t, err.Error(), "tracing sample ratio")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	logger, buf := newTestLogger()
	m := newTestMetrics()

	cfg, err := Load(logger, m)
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, &want, cfg)
	assert.Empty(t, buf.String())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
	assert.Greater(t, testutil.ToFloat64(m.LoadTimestamp), 0.0)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("FEED_URL", "https://example.com/feed.xml")
	t.Setenv("REFRESH_INTERVAL", "60")
	t.Setenv("RESPONSE_CACHE_TTL", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("VERSION", "1.2.3")

	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://example.com/feed.xml", cfg.FeedURL)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, time.Duration(0), cfg.ResponseCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.RateLimitEnabled())
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, "1.2.3", cfg.Version)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("FEED_URL", "javascript:alert(1)")
	t.Setenv("REFRESH_INTERVAL", "100ms")
	logger, buf := newTestLogger()
	m := newTestMetrics()

	cfg, err := Load(logger, m)
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, 300*time.Second, cfg.RefreshInterval)

	assert.Contains(t, buf.String(), "Configuration fallback applied")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("port", "env")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("feed_url", "env")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("refresh_interval", "env")))
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "crypto-news.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
refresh_interval: 2m
version: from-file
latest_default_count: 25
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("VERSION", "from-env")

	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 25, cfg.DashboardLimit)
	assert.Equal(t, "from-env", cfg.Version)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "crypto-news.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 9100\nrate_limit_rps = 2.5\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoad_InvalidEnvKeepsFileValue(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "crypto-news.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "99999")

	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
}

func TestLoad_BadFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "8081")
	logger, buf := newTestLogger()
	m := newTestMetrics()

	cfg, err := Load(logger, m)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Empty(t, cfg.File)
	assert.Contains(t, buf.String(), "config_file")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("config_file", "env")))
}
