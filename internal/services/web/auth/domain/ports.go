package domain

import (
	"context"

	pnet "reviewlens/internal/platform/net"
)

// Backend is the slice of the sentiment API sign in needs
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (*pnet.Principal, error)
}

// ServicePort is consumed by the handlers
type ServicePort interface {
	SignIn(ctx context.Context, in SignIn) (token string, err error)
	SignUp(ctx context.Context, in SignUp) error
}
