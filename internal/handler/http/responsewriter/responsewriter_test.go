package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.Written())
	assert.Same(t, rec, wrapped.Unwrap())
}

func TestWrap_ReusesExistingWrapper(t *testing.T) {
	outer := Wrap(httptest.NewRecorder())
	inner := Wrap(outer)

	assert.Same(t, outer, inner)

	inner.WriteHeader(http.StatusNotFound)
	_, _ = inner.Write([]byte("missing"))
	assert.Equal(t, http.StatusNotFound, outer.StatusCode())
	assert.Equal(t, 7, outer.BytesWritten())
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "status 200", statusCode: http.StatusOK},
		{name: "status 404", statusCode: http.StatusNotFound},
		{name: "status 429", statusCode: http.StatusTooManyRequests},
		{name: "status 500", statusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(tt.statusCode)

			assert.Equal(t, tt.statusCode, wrapped.StatusCode())
			assert.True(t, wrapped.Written())
			assert.Equal(t, tt.statusCode, rec.Code)
		})
	}
}

func TestResponseWriter_WriteHeader_MultipleCallsIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusServiceUnavailable)
	wrapped.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusServiceUnavailable, wrapped.StatusCode())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte(`{"status":"success",`))
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	_, err = wrapped.Write([]byte(`"count":0}`))
	require.NoError(t, err)

	assert.True(t, wrapped.Written(), "first Write implies a 200")
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 30, wrapped.BytesWritten())
	assert.Equal(t, `{"status":"success","count":0}`, rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, wrapped.Written())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponseWriter_ResponseController(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	require.NoError(t, http.NewResponseController(wrapped).Flush())
	assert.True(t, rec.Flushed)
}

func TestResponseWriter_InMiddleware(t *testing.T) {
	var status, size int
	record := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := Wrap(w)
			next.ServeHTTP(rw, r)
			status, size = rw.StatusCode(), rw.BytesWritten()
		})
	}

	h := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news", nil))

	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, len("rate limit exceeded\n"), size)
}
