package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength bounds the feed URL accepted from configuration.
const maxURLLength = 2048

// ValidateFeedURL checks that rawURL is an absolute http or https URL with a host.
// The feed URL is operator supplied, so loopback and private hosts are allowed.
func ValidateFeedURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "feed_url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "feed_url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "feed_url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "feed_url", Message: "URL must have a valid host"}
	}

	return nil
}
