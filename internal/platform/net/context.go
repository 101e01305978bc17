// Package net carries request scoped values and the JSON reply envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const (
	keyToken ctxKey = iota
	keyUser
)

// Principal is the signed in user as resolved from the backend
type Principal struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	Active    bool   `json:"is_active"`
	Superuser bool   `json:"is_superuser"`
	Verified  bool   `json:"is_verified"`
}

// WithRequest sets chi's request id so chimw.GetReqID sees it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id, if any
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithToken stores the raw bearer token taken from the session cookie
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, keyToken, token)
}

// Token returns the bearer token without its scheme, or ""
func Token(ctx context.Context) string {
	v, _ := ctx.Value(keyToken).(string)
	return v
}

// WithUser stores the resolved principal
func WithUser(ctx context.Context, u *Principal) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, keyUser, u)
}

// User returns the principal, nil for anonymous requests
func User(ctx context.Context) *Principal {
	u, _ := ctx.Value(keyUser).(*Principal)
	return u
}

// UserID returns the principal id, or ""
func UserID(ctx context.Context) string {
	if u := User(ctx); u != nil {
		return u.ID
	}
	return ""
}
