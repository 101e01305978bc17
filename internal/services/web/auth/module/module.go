// Package module wires the sign in, sign up and sign out pages
package module

import (
	"time"

	"reviewlens/internal/modkit"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/net/middleware"
	str "reviewlens/internal/platform/strings"
	authhttp "reviewlens/internal/services/web/auth/http"
	authsvc "reviewlens/internal/services/web/auth/service"
)

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	deps modkit.Deps
	svc  *authsvc.Svc
	opts authhttp.Options
}

// New constructs the auth module; cookie and limiter knobs come from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("auth")}, opts...)
	return &Module{
		b:    b,
		deps: deps,
		svc:  authsvc.New(deps.Backend),
		opts: authhttp.Options{
			Secure:        deps.Cfg.MayBool("COOKIE_SECURE", true),
			SessionMaxAge: deps.Cfg.MayDuration("SESSION_MAX_AGE", 24*time.Hour),
			Limit: middleware.RateLimitOptions{
				Requests: deps.Cfg.MayInt("AUTH_RATE_LIMIT", 10),
				Window:   deps.Cfg.MayDuration("AUTH_RATE_WINDOW", time.Minute),
			},
		},
	}
}

// MountRoutes mounts the pages at the router root
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(sub phttp.Router) {
		authhttp.Register(sub, m.svc, m.deps.Pages, m.opts)
	})
}

// Ports returns nil; auth exposes nothing to other modules
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
