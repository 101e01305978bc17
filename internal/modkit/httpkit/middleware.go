package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"reviewlens/internal/platform/net/middleware"
)

// StackOptions configures the stack every request passes through
type StackOptions struct {
	Timeout  time.Duration
	Slow     time.Duration
	Resolver middleware.UserResolver
	// ResolvePaths overrides middleware.DefaultResolvePaths
	ResolvePaths []string
}

// CommonStack returns the router wide middleware, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: o.Slow,
			Skip: []string{"/health", "/metrics"},
		}),
		middleware.Metrics,
		middleware.RecoverJSON,
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
		middleware.Compress(flate.BestSpeed),
		middleware.Session(middleware.SessionOptions{
			Resolver:     o.Resolver,
			ResolvePaths: o.ResolvePaths,
		}),
	}
}

// APIOptions configures the JSON API scope
type APIOptions struct {
	CORS      middleware.CORSOptions
	RateLimit middleware.RateLimitOptions
}

// APIStack returns the middleware for /api routes
func APIStack(o APIOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.RateLimit(o.RateLimit),
	}
}
