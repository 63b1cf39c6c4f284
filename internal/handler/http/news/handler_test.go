package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-news-feed/internal/domain/entity"
	newsUC "crypto-news-feed/internal/usecase/news"
	"crypto-news-feed/pkg/ttlcache"
)

var updatedAt = time.Date(2024, 3, 5, 18, 30, 15, 0, time.UTC)

func records(titles ...string) []entity.NewsRecord {
	out := make([]entity.NewsRecord, len(titles))
	for i, t := range titles {
		out[i] = entity.NewsRecord{Title: t, Link: "https://example.com/" + t, Source: "CoinDesk"}
	}
	return out
}

func newRouter(reader Reader, memo *ttlcache.Memoizer[newsUC.Listing]) http.Handler {
	r := chi.NewRouter()
	NewHandler(reader, memo, nil).Register(r)
	return r
}

func seeded(items ...entity.NewsRecord) *newsUC.Reader {
	store := newsUC.NewStore(5 * time.Minute)
	if items != nil {
		store.Replace(items, updatedAt)
	}
	return newsUC.NewReader(store, 0)
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// countingReader counts calls so tests can observe memoization.
type countingReader struct {
	Reader
	listAll int
	latest  int
}

func (c *countingReader) ListAll() newsUC.Listing {
	c.listAll++
	return c.Reader.ListAll()
}

func (c *countingReader) Latest(n int) newsUC.Listing {
	c.latest++
	return c.Reader.Latest(n)
}

func TestHome(t *testing.T) {
	rec := do(t, newRouter(seeded(), nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got HomeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "active", got.Status)
	assert.Contains(t, got.Endpoints, "/news")
	assert.Contains(t, got.Endpoints, "/news/latest/<count>")
	assert.Contains(t, got.Endpoints, "/status")
}

func TestList_BeforeFirstUpdate(t *testing.T) {
	rec := do(t, newRouter(seeded(), nil), "/news")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","last_update":null,"count":0,"news":[]}`, rec.Body.String())
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "false", rec.Header().Get("X-Cache-Hit"))
	assert.Empty(t, rec.Header().Get("Last-Modified"))
}

func TestList(t *testing.T) {
	rec := do(t, newRouter(seeded(records("a", "b")...), nil), "/news")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Cache-Hit"))
	assert.Equal(t, "Tue, 05 Mar 2024 18:30:15 GMT", rec.Header().Get("Last-Modified"))

	var got NewsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "success", got.Status)
	require.NotNil(t, got.LastUpdate)
	assert.Equal(t, "2024-03-05 18:30:15", *got.LastUpdate)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, records("a", "b"), got.News)
}

func TestLatest(t *testing.T) {
	h := newRouter(seeded(records("a", "b", "c")...), nil)

	tests := []struct {
		name      string
		target    string
		wantCount int
	}{
		{name: "subset", target: "/news/latest/2", wantCount: 2},
		{name: "zero", target: "/news/latest/0", wantCount: 0},
		{name: "clamped", target: "/news/latest/50", wantCount: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
			assert.Empty(t, rec.Header().Get("X-Cache-Hit"))
			assert.Empty(t, rec.Header().Get("Last-Modified"))

			var got NewsResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Len(t, got.News, tt.wantCount)
		})
	}
}

func TestLatest_BadCount(t *testing.T) {
	h := newRouter(seeded(records("a")...), nil)

	rec := do(t, h, "/news/latest/99999999999999999999999")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"count out of range"}`, rec.Body.String())

	for _, target := range []string{"/news/latest/-1", "/news/latest/abc", "/news/latest/"} {
		assert.Equal(t, http.StatusNotFound, do(t, h, target).Code, target)
	}
}

func TestStatus(t *testing.T) {
	rec := do(t, newRouter(seeded(), nil), "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"active","last_update":null,"total_news_count":0,"cache_duration":300}`, rec.Body.String())

	rec = do(t, newRouter(seeded(records("a", "b")...), nil), "/status")
	assert.JSONEq(t, `{"status":"active","last_update":"2024-03-05 18:30:15","total_news_count":2,"cache_duration":300}`, rec.Body.String())
}

func TestNewListingMemoizer_Disabled(t *testing.T) {
	assert.Nil(t, NewListingMemoizer(0, nil))
	assert.Nil(t, NewListingMemoizer(-time.Second, nil))
}

func TestHandler_MemoizesListings(t *testing.T) {
	reader := &countingReader{Reader: seeded(records("a", "b")...)}
	h := newRouter(reader, NewListingMemoizer(time.Minute, nil))

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(t, h, "/news").Code)
		require.Equal(t, http.StatusOK, do(t, h, "/news/latest/1").Code)
	}
	require.Equal(t, http.StatusOK, do(t, h, "/news/latest/2").Code)

	assert.Equal(t, 1, reader.listAll)
	assert.Equal(t, 2, reader.latest)
}

func TestHandler_DoesNotMemoizeBeforeFirstUpdate(t *testing.T) {
	store := newsUC.NewStore(5 * time.Minute)
	reader := &countingReader{Reader: newsUC.NewReader(store, 0)}
	h := newRouter(reader, NewListingMemoizer(time.Minute, nil))

	assert.Equal(t, "false", do(t, h, "/news").Header().Get("X-Cache-Hit"))

	store.Replace(records("a"), updatedAt)
	rec := do(t, h, "/news")
	assert.Equal(t, "true", rec.Header().Get("X-Cache-Hit"))
	assert.Equal(t, 2, reader.listAll)
}

func TestHandler_LatestKeysBoundedBySnapshotSize(t *testing.T) {
	reader := &countingReader{Reader: seeded(records("a", "b")...)}
	h := newRouter(reader, NewListingMemoizer(time.Minute, nil))

	for _, target := range []string{"/news/latest/2", "/news/latest/50", "/news/latest/1000", "/news/latest/987654321"} {
		rec := do(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code, target)

		var got NewsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, 2, got.Count, target)
		assert.Equal(t, records("a", "b"), got.News, target)
	}

	assert.Equal(t, 1, reader.latest, "oversized counts share the clamped entry")
}

// fetchQueue hands out queued fetch results, then empty ones.
type fetchQueue struct {
	results [][]entity.NewsRecord
}

func (q *fetchQueue) Fetch(context.Context) []entity.NewsRecord {
	if len(q.results) == 0 {
		return []entity.NewsRecord{}
	}
	r := q.results[0]
	q.results = q.results[1:]
	return r
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestStatus_KeepsLastSuccessAcrossFailedCycles(t *testing.T) {
	clock := &stepClock{now: updatedAt}
	store := newsUC.NewStore(5 * time.Minute)
	refresher := newsUC.NewRefresher(&fetchQueue{results: [][]entity.NewsRecord{records("a", "b")}}, store,
		newsUC.RefresherConfig{Interval: 5 * time.Minute, Clock: clock})
	h := newRouter(newsUC.NewReader(store, 0), NewListingMemoizer(time.Minute, nil))

	require.True(t, refresher.RunCycle(context.Background()))
	first := store.Load()

	for cycle := 1; cycle <= 3; cycle++ {
		clock.now = clock.now.Add(5 * time.Minute)
		assert.False(t, refresher.RunCycle(context.Background()), "cycle %d", cycle)
		assert.Same(t, first, store.Load(), "cycle %d", cycle)
		assert.Equal(t, updatedAt, *store.Load().LastUpdate, "cycle %d", cycle)
	}

	rec := do(t, h, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"active","last_update":"2024-03-05 18:30:15","total_news_count":2,"cache_duration":300}`, rec.Body.String())

	rec = do(t, h, "/news")
	var got NewsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.NotNil(t, got.LastUpdate)
	assert.Equal(t, "2024-03-05 18:30:15", *got.LastUpdate)
	assert.Equal(t, 2, got.Count)
}
