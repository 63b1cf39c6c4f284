package news

import (
	"time"

	"crypto-news-feed/internal/domain/entity"
)

const (
	statusActive  = "active"
	statusSuccess = "success"
)

// endpoints is the directory served at "/".
var endpoints = map[string]string{
	"/news":                "Get all crypto news",
	"/news/latest/<count>": "Get latest n news items",
	"/status":              "Get API status",
	"/dashboard":           "Crypto news dashboard",
}

// HomeResponse is the body of GET /.
type HomeResponse struct {
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewsResponse is the body of GET /news and GET /news/latest/{count}.
type NewsResponse struct {
	Status     string              `json:"status"`
	LastUpdate *string             `json:"last_update"`
	Count      int                 `json:"count"`
	News       []entity.NewsRecord `json:"news"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status         string  `json:"status"`
	LastUpdate     *string `json:"last_update"`
	TotalNewsCount int     `json:"total_news_count"`
	CacheDuration  int64   `json:"cache_duration"`
}

// formatLastUpdate renders t as "YYYY-MM-DD HH:MM:SS" in UTC, or nil.
func formatLastUpdate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.DateTime)
	return &s
}
