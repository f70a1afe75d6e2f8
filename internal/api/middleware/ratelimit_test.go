package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func newLimiterContext(t *testing.T, ua string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("User-Agent", ua)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSubmissionRateLimit_WithinQuota(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	c, rec := newLimiterContext(t, "test-agent")

	called := false
	handler := SubmissionRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSubmissionRateLimit_OverQuota(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	c, rec := newLimiterContext(t, "test-agent")

	handler := SubmissionRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestSubmissionRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	c, rec := newLimiterContext(t, "test-agent")

	called := false
	handler := SubmissionRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("limiter outage must not block submissions")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSubmissionRateLimit_KeyVariesByCaller(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	handler := SubmissionRateLimit(limiter, zerolog.Nop())(next)

	c1, _ := newLimiterContext(t, "agent-one")
	c2, _ := newLimiterContext(t, "agent-two")
	_ = handler(c1)
	_ = handler(c2)

	if len(limiter.keys) != 2 {
		t.Fatalf("expected 2 limiter calls, got %d", len(limiter.keys))
	}
	if limiter.keys[0] == limiter.keys[1] {
		t.Fatalf("different user agents must hash to different keys")
	}
}
