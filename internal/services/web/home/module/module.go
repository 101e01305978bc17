// Package module wires the landing page
package module

import (
	"reviewlens/internal/modkit"
	phttp "reviewlens/internal/platform/net/http"
	str "reviewlens/internal/platform/strings"
	homehttp "reviewlens/internal/services/web/home/http"
)

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	deps modkit.Deps
}

// New constructs the home module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{b: modkit.Build([]modkit.Option{modkit.WithName("home")}, opts...), deps: deps}
}

// MountRoutes mounts the landing page
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(sub phttp.Router) { homehttp.Register(sub, m.deps.Backend, m.deps.Pages) })
}

// Ports returns nil
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
