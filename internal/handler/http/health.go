// Package http wires the HTTP surface of the service: middleware, health
// probes, prometheus metrics and the router that mounts the news and
// dashboard handlers.
package http

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"crypto-news-feed/internal/domain/entity"
	"crypto-news-feed/internal/handler/http/respond"
	"crypto-news-feed/internal/usecase/news"
)

// Check statuses.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SnapshotSource exposes the currently served snapshot.
type SnapshotSource interface {
	Load() *entity.Snapshot
}

// RefreshStater reports what the refresher is doing.
type RefreshStater interface {
	State() news.State
}

// BreakerStater reports the feed circuit breaker state.
type BreakerStater interface {
	BreakerState() gobreaker.State
}

// HealthHandler reports snapshot freshness, refresher state and the feed
// circuit breaker. Problems upstream only degrade the status: the API keeps
// serving the last good snapshot, so the endpoint always answers 200.
type HealthHandler struct {
	Version   string
	Snapshots SnapshotSource
	Refresher RefreshStater // optional
	Breaker   BreakerStater // optional

	// StaleAfter marks the snapshot degraded when it is older than this.
	// Zero selects three refresh intervals.
	StaleAfter time.Duration

	// Now is the time source; nil selects time.Now.
	Now func() time.Time
}

func (h *HealthHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ServeHTTP writes the health report.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	checks := map[string]CheckStatus{
		"snapshot": h.checkSnapshot(now),
	}
	if h.Refresher != nil {
		checks["refresher"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]interface{}{"state": h.Refresher.State().String()},
		}
	}
	if h.Breaker != nil {
		checks["feed_circuit_breaker"] = checkBreaker(h.Breaker.BreakerState())
	}

	status := StatusHealthy
	for _, c := range checks {
		if c.Status != StatusHealthy {
			status = StatusDegraded
			break
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: now.UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkSnapshot(now time.Time) CheckStatus {
	snap := h.Snapshots.Load()
	details := map[string]interface{}{
		"items":            snap.Count(),
		"refresh_interval": snap.RefreshInterval.Seconds(),
	}

	if !snap.Updated() {
		return CheckStatus{
			Status:  StatusDegraded,
			Message: "no successful refresh yet",
			Details: details,
		}
	}

	age := now.Sub(*snap.LastUpdate)
	details["last_update"] = snap.LastUpdate.UTC().Format(time.RFC3339)
	details["age_seconds"] = int64(age.Seconds())

	staleAfter := h.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 3 * snap.RefreshInterval
	}
	if age > staleAfter {
		return CheckStatus{
			Status:  StatusDegraded,
			Message: "snapshot is stale",
			Details: details,
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

func checkBreaker(state gobreaker.State) CheckStatus {
	details := map[string]interface{}{"state": state.String()}
	if state == gobreaker.StateClosed {
		return CheckStatus{Status: StatusHealthy, Details: details}
	}
	return CheckStatus{
		Status:  StatusDegraded,
		Message: "feed fetches are being short-circuited",
		Details: details,
	}
}

// ReadyHandler answers readiness probes. The service is ready once the first
// refresh has published news.
type ReadyHandler struct {
	Snapshots SnapshotSource
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if !h.Snapshots.Load().Updated() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes; it always returns 200 OK.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
