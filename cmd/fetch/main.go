// Package main provides a one-shot CLI that fetches and normalizes the news
// feed once and prints the records.
// Usage: crypto-news-fetch [--url URL] [--timeout 30s] [--limit N] [--output json|text]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"crypto-news-feed/internal/config"
	"crypto-news-feed/internal/domain/entity"
	"crypto-news-feed/internal/infra/scraper"
	"crypto-news-feed/internal/observability/logging"
	"crypto-news-feed/internal/usecase/fetch"
)

// Output is the JSON document printed with --output json.
type Output struct {
	FeedURL   string              `json:"feed_url"`
	FetchedAt string              `json:"fetched_at"`
	Count     int                 `json:"count"`
	News      []entity.NewsRecord `json:"news"`
}

func main() {
	var (
		feedURL      string
		timeout      time.Duration
		limit        int
		outputFormat string
	)

	// Defaults come from the same environment as the API server.
	logger := logging.New(os.Stderr, logging.ParseLevel(os.Getenv("LOG_LEVEL")), "text")
	slog.SetDefault(logger)
	cfg, err := config.Load(logger, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&feedURL, "url", cfg.FeedURL, "RSS feed URL to fetch")
	flag.DurationVar(&timeout, "timeout", cfg.FetchTimeout, "Request timeout (0 = none)")
	flag.IntVar(&limit, "limit", 0, "Print at most N records (0 = all)")
	flag.StringVar(&outputFormat, "output", "json", "Output format: json or text")
	flag.Parse()

	if err := entity.ValidateFeedURL(feedURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if outputFormat != "json" && outputFormat != "text" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output format '%s' (must be 'json' or 'text')\n", outputFormat)
		os.Exit(2)
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	svc := fetch.NewService(scraper.NewRSSFetcher(scraper.NewHTTPClient(timeout), cfg.UserAgent, 0), feedURL, logger)
	records := svc.Fetch(ctx)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	out := Output{
		FeedURL:   logging.SanitizeURL(feedURL),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Count:     len(records),
		News:      records,
	}
	if err := write(os.Stdout, outputFormat, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		os.Exit(1)
	}
}

func write(w io.Writer, format string, out Output) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%d records from %s (fetched %s)\n\n", out.Count, out.FeedURL, out.FetchedAt)
	for i, r := range out.News {
		fmt.Fprintf(w, "%3d. %s\n", i+1, r.Title)
		if r.Source != "" {
			fmt.Fprintf(w, "     source:    %s\n", r.Source)
		}
		if r.PublishedDate != "" {
			fmt.Fprintf(w, "     published: %s\n", r.PublishedDate)
		}
		if r.Link != "" {
			fmt.Fprintf(w, "     link:      %s\n", r.Link)
		}
	}
	return nil
}
