package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkbatch/internal/config"
	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/metrics"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
	"github.com/MrSnakeDoc/linkbatch/internal/store/memory"
)

type testServer struct {
	handler http.Handler
	deps    deps.Deps
}

func newTestServer(t *testing.T, backend store.Backend, edit ...func(*deps.Deps)) *testServer {
	t.Helper()

	rec := metrics.NewRecorder()
	d := deps.Deps{
		Logger:      logger.NewNop(),
		StartTime:   time.Now(),
		Version:     "test",
		Store:       store.NewService(backend, store.Options{Recorder: rec}),
		Metrics:     rec,
		StaticDir:   t.TempDir(),
		CORSOrigins: []string{"*"},
	}
	for _, fn := range edit {
		fn(&d)
	}

	cfg := &config.Config{RequestTimeout: 5 * time.Second}
	return &testServer{handler: NewRouter(cfg, d.Logger, d), deps: d}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		backend store.Backend
		want    bool
	}{
		{"configured", memory.New(), true},
		{"unconfigured", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.backend)
			rec := srv.do(t, http.MethodGet, "/api/health", "")

			require.Equal(t, http.StatusOK, rec.Code)
			body := decode[map[string]bool](t, rec)
			assert.True(t, body["ok"])
			assert.Equal(t, tt.want, body["dbConfigured"])
		})
	}
}

func TestHistoryLifecycle(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := srv.do(t, http.MethodPost, "/api/history", `{"urls":["a","b"],"fullText":"a b"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[struct {
		Item domain.HistoryItem `json:"item"`
	}](t, rec)
	assert.Equal(t, []string{"a", "b"}, saved.Item.Preview)
	assert.Equal(t, 2, saved.Item.URLCount)
	assert.Equal(t, "a b", saved.Item.FullText)
	assert.NotEmpty(t, saved.Item.ID)

	rec = srv.do(t, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		History []domain.HistoryItem `json:"history"`
	}](t, rec)
	require.Len(t, list.History, 1)
	assert.Equal(t, saved.Item.ID, list.History[0].ID)

	rec = srv.do(t, http.MethodDelete, "/api/history", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/history", "")
	assert.JSONEq(t, `{"history":[]}`, rec.Body.String())
}

func TestHistoryKeepsTwenty(t *testing.T) {
	srv := newTestServer(t, memory.New())

	for i := 0; i < 25; i++ {
		rec := srv.do(t, http.MethodPost, "/api/history", `{"urls":["https://e.com"],"fullText":"x"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	list := decode[struct {
		History []domain.HistoryItem `json:"history"`
	}](t, srv.do(t, http.MethodGet, "/api/history", ""))
	assert.Len(t, list.History, domain.HistoryLimit)
}

func TestSaveHistoryInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"urls":`},
		{"empty body", ``},
		{"missing urls", `{"fullText":"x"}`},
		{"empty urls", `{"urls":[],"fullText":"x"}`},
		{"only non-string urls", `{"urls":[1,null,{}],"fullText":"x"}`},
		{"missing text", `{"urls":["a"]}`},
		{"empty text", `{"urls":["a"],"fullText":""}`},
		{"non-string text", `{"urls":["a"],"fullText":5}`},
	}

	srv := newTestServer(t, memory.New())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/history", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid payload", decode[errorBody](t, rec).Error)
		})
	}
}

func TestSaveHistoryDropsNonStringURLs(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := srv.do(t, http.MethodPost, "/api/history", `{"urls":["a",7,"b"],"fullText":"a 7 b"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decode[struct {
		Item domain.HistoryItem `json:"item"`
	}](t, rec)
	assert.Equal(t, 2, saved.Item.URLCount)
	assert.Equal(t, []string{"a", "b"}, saved.Item.Preview)
}

func TestShares(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := srv.do(t, http.MethodPost, "/api/shares", `{"urls":["https://x.com","https://x.com","junk"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[map[string]string](t, rec)["id"]
	assert.Regexp(t, `^[0-9a-f]{12}$`, id)

	rec = srv.do(t, http.MethodGet, "/api/shares/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"urls":["https://x.com","https://x.com","junk"]}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/shares/doesnotexist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode[errorBody](t, rec).Error)

	rec = srv.do(t, http.MethodPost, "/api/shares", `{"urls":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnconfiguredStore(t *testing.T) {
	srv := newTestServer(t, nil)

	requests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/api/history", ""},
		{http.MethodPost, "/api/history", `{"urls":["a"],"fullText":"a"}`},
		{http.MethodPost, "/api/history", `not json`},
		{http.MethodDelete, "/api/history", ""},
		{http.MethodPost, "/api/shares", `{"urls":["a"]}`},
		{http.MethodPost, "/api/shares", `{}`},
		{http.MethodGet, "/api/shares/abc", ""},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Contains(t, decode[errorBody](t, rec).Error, "LINKBATCH_REDIS_ADDR")
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, memory.New())

	req := httptest.NewRequest(http.MethodOptions, "/api/shares", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// Non-API routes are not CORS-enabled
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example")
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func writeBundle(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.123.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("MIT"), 0o644))
}

func TestStatic(t *testing.T) {
	srv := newTestServer(t, memory.New())
	writeBundle(t, srv.deps.StaticDir)

	tests := []struct {
		name      string
		target    string
		wantBody  string
		wantCache string
	}{
		{"root serves index", "/", "<html>app</html>", "no-cache"},
		{"hashed asset", "/assets/app.123.js", "console.log(1)", "public, max-age=31536000, immutable"},
		{"extensionless file", "/LICENSE", "MIT", ""},
		{"client route falls back", "/share/abc", "<html>app</html>", "no-cache"},
		{"missing asset falls back", "/assets/missing.js", "<html>app</html>", "no-cache"},
		{"traversal stays in bundle", "/../../etc/passwd", "<html>app</html>", "no-cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantCache, rec.Header().Get("Cache-Control"))
		})
	}

	// Unknown API paths are not swallowed by the bundle
	rec := srv.do(t, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticMissingBundle(t *testing.T) {
	srv := newTestServer(t, memory.New(), func(d *deps.Deps) {
		d.StaticDir = filepath.Join(t.TempDir(), "dist")
	})

	rec := srv.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Build artifacts not found")
}

func TestProbes(t *testing.T) {
	srv := newTestServer(t, memory.New())

	rec := srv.do(t, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ready":true,"store":"memory"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "memory", health["store"])
}

func TestProbesRestrictedByCIDR(t *testing.T) {
	srv := newTestServer(t, memory.New(), func(d *deps.Deps) {
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
		d.TrustProxy = false
	})

	// httptest requests come from 192.0.2.1
	for _, target := range []string{"/readyz", "/healthz", "/metrics"} {
		rec := srv.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// API routes stay open
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, memory.New())

	srv.do(t, http.MethodGet, "/api/shares/missing", "")
	rec := srv.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `linkbatch_http_requests_total{method="GET",route="/api/shares/{id}",status="404"} 1`)
	assert.Contains(t, body, `linkbatch_store_operations_total{op="resolve_share",result="not_found"} 1`)
}
