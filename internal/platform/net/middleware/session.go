package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"reviewlens/internal/platform/logger"
	pnet "reviewlens/internal/platform/net"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie holding "Bearer <jwt>"
const CookieName = "access_token"

const bearerPrefix = "Bearer "

var now = time.Now // seam

// UserResolver looks up the principal for the token on ctx
type UserResolver interface {
	CurrentUser(ctx context.Context) (*pnet.Principal, error)
}

// SessionOptions configures Session
type SessionOptions struct {
	Resolver UserResolver
	// ResolvePaths are exact paths on which the user is looked up
	ResolvePaths []string
}

// DefaultResolvePaths are the pages that need to know who is signed in
var DefaultResolvePaths = []string{"/users/me", "/signin", "/signup", "/signout"}

// Session moves the cookie token onto the context and resolves the user on ResolvePaths
// expired tokens are dropped without a backend round trip
func Session(o SessionOptions) func(http.Handler) http.Handler {
	paths := o.ResolvePaths
	if paths == nil {
		paths = DefaultResolvePaths
	}
	resolve := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		resolve[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			if exp, ok := TokenExpiry(token); ok && !exp.After(now()) {
				logger.C(r.Context()).Debug().Time("exp", exp).Msg("session token expired")
				next.ServeHTTP(w, r)
				return
			}

			ctx := pnet.WithToken(r.Context(), token)
			if _, ok := resolve[r.URL.Path]; ok && o.Resolver != nil {
				u, err := o.Resolver.CurrentUser(ctx)
				if err != nil || u == nil {
					logger.C(ctx).Warn().Err(err).Msg("Error while getting current user: no user found or token expired")
					next.ServeHTTP(w, r)
					return
				}
				ctx = pnet.WithUser(ctx, u)
				ctx = logger.WithRequest(ctx, "", u.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest returns the cookie token without its Bearer scheme, or ""
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	v := strings.Trim(c.Value, `"`)
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		v = v[len(bearerPrefix):]
	}
	return strings.TrimSpace(v)
}

// TokenExpiry reads the exp claim without verifying the signature; the backend owns the key
// ok is false for unparsable tokens or tokens without exp
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// SessionCookie builds the cookie for token, capping MaxAge at the token exp
func SessionCookie(token string, maxAge time.Duration, secure bool) *http.Cookie {
	if exp, ok := TokenExpiry(token); ok {
		if left := exp.Sub(now()); left < maxAge {
			maxAge = left
		}
	}
	secs := int(maxAge / time.Second)
	if secs <= 0 {
		secs = -1
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    bearerPrefix + token,
		Path:     "/",
		MaxAge:   secs,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
