package domain

import (
	"context"

	"reviewlens/internal/adapters/backend"
	pnet "reviewlens/internal/platform/net"
)

// Backend is the slice of the sentiment API the account pages need
type Backend interface {
	CurrentUser(ctx context.Context) (*pnet.Principal, error)
	UpdateUser(ctx context.Context, id string, u backend.UserUpdate) (*pnet.Principal, error)
}

// ColorPrefs is the port the games module reads chart overrides through
type ColorPrefs interface {
	Overrides(ctx context.Context, userID string) (map[string]string, error)
}

// ServicePort is consumed by the handlers
type ServicePort interface {
	ColorPrefs
	UpdateEmail(ctx context.Context, userID, email string) (*pnet.Principal, error)
	Colors(ctx context.Context, userID string) ([]ColorPref, error)
	SetColor(ctx context.Context, userID string, in ColorForm) error
	ColorsEnabled() bool
}
