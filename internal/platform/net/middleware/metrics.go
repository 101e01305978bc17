package middleware

import (
	"net/http"
	"time"

	"reviewlens/internal/platform/metrics"
)

// Metrics records request count and latency labelled by chi route pattern
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := wrapWriter(w)
		start := time.Now()
		next.ServeHTTP(sw, r)
		metrics.ObserveHTTP(r.Method, routePattern(r), sw.status, time.Since(start))
	})
}
