// Package module wires the meta endpoints
package module

import (
	"time"

	"reviewlens/internal/core/version"
	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/module"
	"reviewlens/internal/modkit/repokit"
	phttp "reviewlens/internal/platform/net/http"
	str "reviewlens/internal/platform/strings"
	metahttp "reviewlens/internal/services/web/meta/http"
)

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module; the backend check is required, storage checks only degrade
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("meta")}, opts...)

	checks := []metahttp.Check{{Name: "backend", Pinger: deps.Backend}}
	pg := metahttp.Check{Name: "pg"}
	if p, ok := deps.PG.(repokit.Pinger); ok {
		pg.Pinger = p
	}
	ch := metahttp.Check{Name: "ch"}
	if deps.HasCH() {
		ch.Pinger = deps.CH
	}
	checks = append(checks, pg, ch)

	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		Checks:      checks,
		Required:    map[string]bool{"backend": true},
		Modules:     module.Names,
		Timeout:     deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
	}}
}

var _ modkit.APIModule = (*Module)(nil)

// MountRoutes mounts nothing at the root; the root /health is the heartbeat middleware
func (m *Module) MountRoutes(r phttp.Router) { m.b.Mount(r, func(phttp.Router) {}) }

// MountAPI mounts health, readiness and version under the API prefix
func (m *Module) MountAPI(r phttp.Router) { metahttp.Register(r, m.deps) }

// Ports returns nil; meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
