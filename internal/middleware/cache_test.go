package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/property-api/internal/config"
)

func cacheCtx(e *echo.Echo, target, path string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKeyIsStableAndQuerySensitive(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "property-api:cache", KeyStrategy: "route_query"}

	a := cacheKey(cfg, cacheCtx(e, "/v1/properties?page=1", "/v1/properties"))
	b := cacheKey(cfg, cacheCtx(e, "/v1/properties?page=1", "/v1/properties"))
	other := cacheKey(cfg, cacheCtx(e, "/v1/properties?page=2", "/v1/properties"))

	if a != b {
		t.Fatalf("same request hashed to different keys: %q vs %q", a, b)
	}
	if a == other {
		t.Fatal("different query strings must not share a cache entry")
	}
	if !strings.HasPrefix(a, "property-api:cache:") {
		t.Fatalf("key %q missing the configured prefix", a)
	}
}

func TestResponseCacheDisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	// nil Redis client: the middleware must get out of the way entirely.
	mw := NewResponseCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)
	e.GET("/v1/properties", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "" {
		t.Fatalf("X-Cache = %q, want unset when caching is off", got)
	}
}

func TestBodyRecorderOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	r := &bodyRecorder{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	if _, err := r.Write([]byte("12345")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Write([]byte("67890")); err != nil {
		t.Fatal(err)
	}

	// The client sees everything; the cache buffer is abandoned.
	if rec.Body.String() != "1234567890" {
		t.Fatalf("client body = %q", rec.Body.String())
	}
	if !r.overflow {
		t.Fatal("recorder must flag responses larger than the limit")
	}
	if len(r.buf) > 8 {
		t.Fatalf("buffered %d bytes past the limit", len(r.buf))
	}
}
