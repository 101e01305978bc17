// Package module wires the account pages and owns the ColorPrefs port
package module

import (
	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/repokit"
	phttp "reviewlens/internal/platform/net/http"
	str "reviewlens/internal/platform/strings"
	"reviewlens/internal/services/web/account/domain"
	accounthttp "reviewlens/internal/services/web/account/http"
	accountrepo "reviewlens/internal/services/web/account/repo"
	accountsvc "reviewlens/internal/services/web/account/service"
)

// Ports is what the account module exposes to other modules
type Ports struct {
	Prefs domain.ColorPrefs
}

// Wiring is what the account module takes from other modules
type Wiring struct {
	// Keys lists the chart series a colour can be set for
	Keys accounthttp.KeySource
}

// Module implements modkit.Module
type Module struct {
	b     modkit.Built
	deps  modkit.Deps
	svc   *accountsvc.Svc
	wires Wiring
}

// New constructs the account module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("account")}, opts...)
	var binder repokit.Binder[accountrepo.Repo]
	if deps.HasPG() {
		binder = accountrepo.NewPG()
	}
	m := &Module{
		b:    b,
		deps: deps,
		svc:  accountsvc.New(deps.Backend, deps.PG, binder),
	}
	if w, ok := b.Ports.(Wiring); ok {
		m.wires = w
	}
	return m
}

// MountRoutes mounts the pages at the router root
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(sub phttp.Router) {
		accounthttp.Register(sub, m.svc, m.deps.Pages, m.wires.Keys)
	})
}

// Ports returns Ports
func (m *Module) Ports() any { return Ports{Prefs: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
