package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
)

func newIPContext(e *echo.Echo, ip string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/medicos", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimit_RequestsWithinLimit(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5}

	e := echo.New()
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 5; i++ {
		c, rec := newIPContext(e, "10.0.0.1")
		if err := handler(c); err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: expected X-RateLimit-Limit '10', got %q", i+1, got)
		}
	}
}

func TestRateLimit_ExceedsLimit(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}

	e := echo.New()
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		c, _ := newIPContext(e, "10.0.0.1")
		if err := handler(c); err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
	}

	c, _ := newIPContext(e, "10.0.0.1")
	err := handler(c)
	if err == nil {
		t.Fatal("expected error for rate-limited request")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.Code)
	}
}

func TestRateLimit_RendersPortugueseMessage(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	e.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}))
	e.GET("/consultas", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})

	var rec *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/consultas", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		e.ServeHTTP(rec, req)
	}

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	var body apperr.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	if body.Message != rateLimitMessage {
		t.Errorf("message = %q, want %q", body.Message, rateLimitMessage)
	}
}

func TestRateLimit_RetryAfterHeader(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}

	e := echo.New()
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	c, _ := newIPContext(e, "10.0.0.1")
	_ = handler(c)

	c, rec := newIPContext(e, "10.0.0.1")
	if err := handler(c); err == nil {
		t.Fatal("expected error for rate-limited request")
	}

	retryVal, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	if err != nil {
		t.Fatalf("Retry-After header is not a valid integer: %q", rec.Header().Get("Retry-After"))
	}
	if retryVal < 1 {
		t.Errorf("expected Retry-After >= 1, got %d", retryVal)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("expected X-RateLimit-Remaining '0', got %q", got)
	}
}

func TestRateLimit_PerIPIsolation(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}

	e := echo.New()
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	c, _ := newIPContext(e, "10.0.0.1")
	if err := handler(c); err != nil {
		t.Fatalf("first client first request: %v", err)
	}
	c, _ = newIPContext(e, "10.0.0.1")
	if err := handler(c); err == nil {
		t.Fatal("first client second request: expected rate limit error")
	}
	c, _ = newIPContext(e, "10.0.0.2")
	if err := handler(c); err != nil {
		t.Fatalf("second client first request: %v", err)
	}
}

func TestRateLimit_DefaultConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond != 100 {
		t.Errorf("expected RequestsPerSecond 100, got %f", cfg.RequestsPerSecond)
	}
	if cfg.BurstSize != 200 {
		t.Errorf("expected BurstSize 200, got %d", cfg.BurstSize)
	}
}

func TestRetryAfter_ZeroRate(t *testing.T) {
	lim := rate.NewLimiter(0, 1)
	now := time.Now()
	lim.AllowN(now, 1)
	if got := retryAfter(lim, now); got != 60 {
		t.Errorf("expected 60 for a limiter that never refills, got %d", got)
	}
}

func TestRetryAfter_DoesNotConsumeToken(t *testing.T) {
	lim := rate.NewLimiter(1, 1)
	now := time.Now()
	lim.AllowN(now, 1)
	_ = retryAfter(lim, now)
	if !lim.AllowN(now.Add(1100*time.Millisecond), 1) {
		t.Error("expected a token after one second; retryAfter must cancel its reservation")
	}
}

func TestRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})
	now := time.Now()

	l1 := store.get("key1", now)
	if l1 == nil {
		t.Fatal("expected non-nil limiter")
	}
	if l2 := store.get("key1", now); l1 != l2 {
		t.Error("expected same limiter instance for same key")
	}
	if l3 := store.get("key2", now); l1 == l3 {
		t.Error("expected different limiter for different key")
	}
}

func TestRateLimiterStore_EvictsIdle(t *testing.T) {
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})
	now := time.Now()
	store.get("stale", now)

	later := now.Add(limiterIdleTTL + 2*time.Minute)
	store.get("fresh", later)

	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.visitors["stale"]; ok {
		t.Error("expected idle limiter to be evicted")
	}
	if _, ok := store.visitors["fresh"]; !ok {
		t.Error("expected fresh limiter to be kept")
	}
}
