package fetch

import (
	"context"
	"log/slog"
	"time"

	"crypto-news-feed/internal/domain/entity"
	"crypto-news-feed/internal/observability/logging"
	"crypto-news-feed/internal/observability/metrics"
)

// FeedFetcher retrieves the raw entries of a feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]RawItem, error)
}

// Service fetches the configured feed and normalizes its entries.
type Service struct {
	FeedFetcher FeedFetcher
	FeedURL     string
	Logger      *slog.Logger
}

// NewService creates a fetch Service for feedURL.
// A nil logger selects slog.Default().
func NewService(fetcher FeedFetcher, feedURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		FeedFetcher: fetcher,
		FeedURL:     feedURL,
		Logger:      logger,
	}
}

// Fetch downloads the feed and returns its normalized records in feed order.
// Any failure is logged and reported as an empty result, so callers can treat
// "no records" uniformly whether the feed was empty or unreachable.
func (s *Service) Fetch(ctx context.Context) []entity.NewsRecord {
	start := time.Now()

	items, err := s.FeedFetcher.Fetch(ctx, s.FeedURL)
	duration := time.Since(start)
	if err != nil {
		s.Logger.Warn("failed to fetch feed",
			slog.String("feed_url", logging.SanitizeURL(s.FeedURL)),
			slog.Duration("duration", duration),
			slog.Any("error", logging.SanitizeError(err)))
		metrics.RecordFeedFetch(false, duration, 0)
		return []entity.NewsRecord{}
	}

	records := NormalizeAll(items)
	metrics.RecordFeedFetch(true, duration, len(records))

	s.Logger.Info("feed fetched",
		slog.Int("items", len(records)),
		slog.Duration("duration", duration))

	return records
}
