package middleware

import (
	"net/http"
	"runtime/debug"

	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	pnet "reviewlens/internal/platform/net"

	json "github.com/goccy/go-json"
)

// writeJSON writes an envelope; middlewares cannot import the http package without a cycle
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RecoverJSON turns a panic into a JSON 500 and logs the stack with the request id
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("internal error"), reqID)
			writeJSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
