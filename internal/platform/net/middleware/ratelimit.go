package middleware

import (
	"net/http"
	"time"

	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"

	"github.com/go-chi/httprate"
)

// RateLimitOptions configures a per IP fixed window limiter
type RateLimitOptions struct {
	Requests int
	Window   time.Duration
	// OnLimit writes the rejection; nil writes a JSON 429 envelope
	OnLimit http.HandlerFunc
}

// RateLimit limits requests per client IP; Requests <= 0 disables it
func RateLimit(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.Window <= 0 {
		o.Window = time.Minute
	}
	onLimit := o.OnLimit
	if onLimit == nil {
		onLimit = func(w http.ResponseWriter, r *http.Request) {
			status, body := pnet.Error(perr.New(perr.ErrorCodeTooManyRequests, "too many requests"), pnet.RequestID(r.Context()))
			writeJSON(w, status, body)
		}
	}
	return httprate.Limit(o.Requests, o.Window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(onLimit),
	)
}
