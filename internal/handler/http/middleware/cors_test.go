package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockCORSLogger records calls for assertions.
type mockCORSLogger struct {
	infoCount  int
	warnCount  int
	debugCount int
	lastMsg    string
	lastFields map[string]interface{}
}

func (m *mockCORSLogger) Info(msg string, fields map[string]interface{}) {
	m.infoCount++
	m.lastMsg = msg
	m.lastFields = fields
}

func (m *mockCORSLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnCount++
	m.lastMsg = msg
	m.lastFields = fields
}

func (m *mockCORSLogger) Debug(msg string, fields map[string]interface{}) {
	m.debugCount++
	m.lastMsg = msg
	m.lastFields = fields
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func doCORS(config CORSConfig, method, origin string, preflight bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/news", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	}
	rr := httptest.NewRecorder()
	CORS(config)(okHandler).ServeHTTP(rr, req)
	return rr
}

func TestCORS_Wildcard_ActualRequest(t *testing.T) {
	rr := doCORS(DefaultCORSConfig([]string{"*"}), http.MethodGet, "https://anywhere.example", false)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("wildcard must not allow credentials, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Expose-Headers"); got == "" {
		t.Error("expected Access-Control-Expose-Headers to be set")
	}
}

func TestCORS_Whitelist_AllowedOriginEchoed(t *testing.T) {
	config := DefaultCORSConfig([]string{"https://dashboard.example"})
	rr := doCORS(config, http.MethodGet, "https://dashboard.example", false)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example" {
		t.Errorf("expected echoed origin, got %q", got)
	}
	if got := rr.Header().Get("Vary"); got != "Origin" {
		t.Errorf("expected Vary: Origin, got %q", got)
	}
}

func TestCORS_Whitelist_DisallowedOrigin(t *testing.T) {
	logger := &mockCORSLogger{}
	config := DefaultCORSConfig([]string{"https://dashboard.example"})
	config.Logger = logger

	rr := doCORS(config, http.MethodGet, "https://evil.example", false)

	if rr.Code != http.StatusOK {
		t.Errorf("disallowed origins still reach the handler, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers, got %q", got)
	}
	if logger.warnCount != 1 {
		t.Errorf("expected 1 warning, got %d", logger.warnCount)
	}
	if logger.lastFields["origin"] != "https://evil.example" {
		t.Errorf("expected origin field, got %v", logger.lastFields["origin"])
	}
}

func TestCORS_Preflight(t *testing.T) {
	logger := &mockCORSLogger{}
	config := DefaultCORSConfig([]string{"*"})
	config.Logger = logger

	rr := doCORS(config, http.MethodOptions, "https://anywhere.example", true)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, HEAD, OPTIONS" {
		t.Errorf("unexpected Allow-Methods %q", got)
	}
	if got := rr.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("unexpected Max-Age %q", got)
	}
	if logger.debugCount != 1 {
		t.Errorf("expected 1 debug log, got %d", logger.debugCount)
	}
}

func TestCORS_OptionsWithoutPreflightHeaderPassesThrough(t *testing.T) {
	rr := doCORS(DefaultCORSConfig([]string{"*"}), http.MethodOptions, "https://anywhere.example", false)

	if rr.Code != http.StatusOK {
		t.Errorf("expected handler response 200, got %d", rr.Code)
	}
}

func TestCORS_NoOrigin(t *testing.T) {
	rr := doCORS(DefaultCORSConfig([]string{"*"}), http.MethodGet, "", false)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for same-origin request, got %q", got)
	}
}

func TestCORS_NoLogger(t *testing.T) {
	config := DefaultCORSConfig([]string{"https://dashboard.example"})

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("CORS panicked without logger: %v", r)
		}
	}()
	doCORS(config, http.MethodGet, "https://evil.example", false)
	doCORS(config, http.MethodOptions, "https://dashboard.example", true)
}
