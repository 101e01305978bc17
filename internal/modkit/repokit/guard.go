package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger is anything that answers a readiness ping
type Pinger interface {
	Ping(context.Context) error
}

// Ping checks p with a 5s default deadline and names it in the error
func Ping(ctx context.Context, name string, p Pinger) error {
	if p == nil {
		return fmt.Errorf("%s: nil dependency", name)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", name, err)
	}
	return nil
}

// MustPing panics when Ping fails; for startup only
func MustPing(ctx context.Context, name string, p Pinger) {
	if err := Ping(ctx, name, p); err != nil {
		panic(err.Error())
	}
}
