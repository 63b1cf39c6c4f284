// Package scraper downloads and parses the upstream RSS/Atom feed.
// It uses the gofeed library for parsing and a circuit breaker so that a
// feed that keeps failing is not hammered on every refresh cycle.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"crypto-news-feed/internal/domain/entity"
	"crypto-news-feed/internal/observability/logging"
	"crypto-news-feed/internal/resilience/circuitbreaker"
	"crypto-news-feed/internal/usecase/fetch"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// DefaultUserAgent is sent when no User-Agent is configured.
const DefaultUserAgent = "CryptoNewsFeedBot/1.0"

// RSSFetcher implements fetch.FeedFetcher using the gofeed library.
// Each Fetch is a single HTTP GET; failures are not retried.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	userAgent      string
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// An empty userAgent selects DefaultUserAgent. refreshInterval bounds how long
// the circuit stays open so every scheduled cycle still contacts the feed;
// pass 0 for one-shot use.
func NewRSSFetcher(client *http.Client, userAgent string, refreshInterval time.Duration) *RSSFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig(refreshInterval)),
		userAgent:      userAgent,
	}
}

// Fetch retrieves and parses the feed at feedURL.
// Network errors, non-2xx responses and an open circuit are wrapped with
// entity.ErrFeedFetchFailed; unparseable bodies with entity.ErrInvalidFeedFormat.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]fetch.RawItem, error) {
	items, err := circuitbreaker.Do(f.circuitBreaker, func() ([]fetch.RawItem, error) {
		return f.doFetch(ctx, feedURL)
	})
	if circuitbreaker.Rejected(err) {
		slog.Warn("feed fetch circuit breaker open, request rejected",
			slog.String("service", "feed-fetch"),
			slog.String("url", logging.SanitizeURL(feedURL)),
			slog.String("state", f.circuitBreaker.State().String()))
		return nil, fmt.Errorf("%w: %w", entity.ErrFeedFetchFailed, err)
	}
	return items, err
}

// BreakerState returns the state of the feed circuit breaker.
func (f *RSSFetcher) BreakerState() gobreaker.State {
	return f.circuitBreaker.State()
}

// doFetch performs the HTTP request and parses the body without the circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]fetch.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", entity.ErrFeedFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrFeedFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w", entity.ErrFeedFetchFailed,
			gofeed.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status})
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidFeedFormat, err)
	}

	items := make([]fetch.RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, fetch.RawItem{
			Title:       it.Title,
			Description: it.Description,
			PubDate:     it.Published,
		})
	}

	return items, nil
}
