package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewlens/internal/platform/net/middleware"
	kit "reviewlens/internal/platform/testkit"
)

func hit(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitPerIP(t *testing.T) {
	t.Parallel()
	h := middleware.RateLimit(middleware.RateLimitOptions{Requests: 2, Window: time.Minute})(ok())

	for i := 0; i < 2; i++ {
		if rec := hit(h, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
	rec := hit(h, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), "too many requests")

	if rec := hit(h, "10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("other ip = %d", rec.Code)
	}
}

func TestRateLimitCustomHandlerAndDisabled(t *testing.T) {
	t.Parallel()
	custom := middleware.RateLimit(middleware.RateLimitOptions{
		Requests: 1,
		OnLimit: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	})(ok())
	hit(custom, "10.0.0.3")
	if rec := hit(custom, "10.0.0.3"); rec.Code != http.StatusTeapot {
		t.Fatalf("custom limit = %d", rec.Code)
	}

	off := middleware.RateLimit(middleware.RateLimitOptions{})(ok())
	for i := 0; i < 5; i++ {
		if rec := hit(off, "10.0.0.4"); rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter rejected request %d", i)
		}
	}
}
