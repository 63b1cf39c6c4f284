// Package news serves the JSON news API: the endpoint directory, the full
// news list, the latest-N slice and the status summary.
package news

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"crypto-news-feed/internal/handler/http/pathutil"
	"crypto-news-feed/internal/handler/http/respond"
	newsUC "crypto-news-feed/internal/usecase/news"
	"crypto-news-feed/pkg/ttlcache"
)

// CountParam is the chi URL parameter holding the requested item count.
const CountParam = "count"

// Reader is the read side of the snapshot used by the handlers.
type Reader interface {
	ListAll() newsUC.Listing
	Latest(n int) newsUC.Listing
	Status() newsUC.Status
}

// Handler serves the news endpoints.
type Handler struct {
	reader Reader
	memo   *ttlcache.Memoizer[newsUC.Listing]
	logger *slog.Logger
}

// NewListingMemoizer creates the memoizer shared by the list endpoints.
// Listings computed before the first successful refresh are never cached,
// so clients see the first real snapshot as soon as it exists. A ttl of zero
// or less disables memoization and returns nil.
func NewListingMemoizer(ttl time.Duration, metrics ttlcache.Metrics) *ttlcache.Memoizer[newsUC.Listing] {
	if ttl <= 0 {
		return nil
	}
	return ttlcache.NewMemoizer(ttlcache.MemoizerConfig[newsUC.Listing]{
		Name:      "news_listing",
		TTL:       ttl,
		Cacheable: newsUC.Listing.Updated,
		Metrics:   metrics,
	})
}

// NewHandler creates a Handler. memo may be nil.
func NewHandler(reader Reader, memo *ttlcache.Memoizer[newsUC.Listing], logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{reader: reader, memo: memo, logger: logger}
}

// Register mounts the routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/news", h.List)
	r.Get("/news/latest/{"+CountParam+":[0-9]+}", h.Latest)
	r.Get("/status", h.Status)
}

func (h *Handler) listing(key string, fn func() newsUC.Listing) newsUC.Listing {
	if h.memo == nil {
		return fn()
	}
	l, _ := h.memo.Do(key, fn)
	return l
}

// Home godoc
// @Summary      API directory
// @Tags         news
// @Produce      json
// @Success      200 {object} HomeResponse
// @Router       / [get]
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, HomeResponse{
		Status:    statusActive,
		Endpoints: endpoints,
	})
}

// List godoc
// @Summary      All news in the current snapshot
// @Tags         news
// @Produce      json
// @Success      200 {object} NewsResponse
// @Header       200 {string} X-Cache-Hit "true when the snapshot holds news"
// @Router       /news [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	l := h.listing(ttlcache.Key("list_all"), h.reader.ListAll)

	setCacheControl(w, l.RefreshInterval)
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(l.Count() > 0))
	if l.LastUpdate != nil {
		w.Header().Set("Last-Modified", l.LastUpdate.UTC().Format(http.TimeFormat))
	}
	respond.JSON(w, http.StatusOK, newsResponse(l))
}

// Latest godoc
// @Summary      First N news items
// @Tags         news
// @Produce      json
// @Param        count path int true "number of items"
// @Success      200 {object} NewsResponse
// @Failure      400 {object} map[string]string
// @Router       /news/latest/{count} [get]
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	n, err := pathutil.ParseCount(chi.URLParam(r, CountParam))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	// Counts past the snapshot size share one entry.
	n = min(n, h.reader.Status().TotalCount)
	l := h.listing(ttlcache.Key("latest", n), func() newsUC.Listing {
		return h.reader.Latest(n)
	})

	setCacheControl(w, l.RefreshInterval)
	respond.JSON(w, http.StatusOK, newsResponse(l))
}

// Status godoc
// @Summary      Snapshot status
// @Tags         news
// @Produce      json
// @Success      200 {object} StatusResponse
// @Router       /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.reader.Status()
	respond.JSON(w, http.StatusOK, StatusResponse{
		Status:         statusActive,
		LastUpdate:     formatLastUpdate(st.LastUpdate),
		TotalNewsCount: st.TotalCount,
		CacheDuration:  int64(st.RefreshInterval.Seconds()),
	})
}

func newsResponse(l newsUC.Listing) NewsResponse {
	return NewsResponse{
		Status:     statusSuccess,
		LastUpdate: formatLastUpdate(l.LastUpdate),
		Count:      l.Count(),
		News:       l.Items,
	}
}

func setCacheControl(w http.ResponseWriter, interval time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int64(interval.Seconds())))
}
