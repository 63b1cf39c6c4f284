// Package dashboard renders the HTML news dashboard served at /dashboard.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"crypto-news-feed/internal/handler/http/respond"
	"crypto-news-feed/internal/observability/logging"
	newsUC "crypto-news-feed/internal/usecase/news"
)

// SourceParam is the query parameter selecting a single source.
const SourceParam = "source"

const timeLayout = time.DateTime

//go:embed templates/*.html
var templateFS embed.FS

var page = template.Must(template.New("dashboard.html").ParseFS(templateFS, "templates/dashboard.html"))

// Viewer builds the dashboard view for a source filter.
type Viewer interface {
	Dashboard(source string) newsUC.DashboardView
}

// Bar is one row of a CSS bar chart.
type Bar struct {
	Label   string
	Count   int
	Percent int
}

// Page is the template data.
type Page struct {
	newsUC.DashboardView
	SourceOptions   []string
	SourceBars      []Bar
	HourBars        []Bar
	LatestPublished string
	LastUpdated     string
}

// Handler serves the dashboard page.
type Handler struct {
	viewer Viewer
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(viewer Viewer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{viewer: viewer, logger: logger}
}

// ServeHTTP renders the page. Rendering goes to a buffer first so a template
// failure still produces a clean 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := h.viewer.Dashboard(r.URL.Query().Get(SourceParam))

	var buf bytes.Buffer
	if err := page.Execute(&buf, build(view)); err != nil {
		h.logger.Error("dashboard render failed",
			slog.String("error", logging.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func build(view newsUC.DashboardView) Page {
	p := Page{
		DashboardView: view,
		SourceOptions: append([]string{newsUC.AllSources}, view.Sources...),
		LastUpdated:   "never",
	}
	if view.LastUpdate != nil {
		p.LastUpdated = view.LastUpdate.UTC().Format(timeLayout)
	}
	if view.LatestPublished != nil {
		p.LatestPublished = view.LatestPublished.Format(timeLayout)
	}

	maxSource := 0
	for _, sc := range view.BySource {
		maxSource = max(maxSource, sc.Count)
	}
	for _, sc := range view.BySource {
		p.SourceBars = append(p.SourceBars, Bar{Label: sc.Source, Count: sc.Count, Percent: percent(sc.Count, maxSource)})
	}

	maxHour := 0
	for _, n := range view.ByHour {
		maxHour = max(maxHour, n)
	}
	p.HourBars = make([]Bar, 0, len(view.ByHour))
	for hour, n := range view.ByHour {
		p.HourBars = append(p.HourBars, Bar{Label: fmt.Sprintf("%02d", hour), Count: n, Percent: percent(n, maxHour)})
	}
	return p
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return n * 100 / total
}
