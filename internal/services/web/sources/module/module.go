// Package module wires the sources catalog; it owns the Catalog port the games module reads
package module

import (
	"reviewlens/internal/modkit"
	phttp "reviewlens/internal/platform/net/http"
	str "reviewlens/internal/platform/strings"
	srchttp "reviewlens/internal/services/web/sources/http"
	srcsvc "reviewlens/internal/services/web/sources/service"
)

// Ports is the port set other modules pull from the registry
type Ports struct {
	Catalog *srcsvc.Catalog
}

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	cat *srcsvc.Catalog
}

// New builds the catalog from deps.Backend, refreshed every REFRESH from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("sources")}, opts...)
	every := deps.Cfg.MayDuration("SOURCES_REFRESH", srcsvc.DefaultRefresh)
	return &Module{b: b, cat: srcsvc.New(deps.Backend, every)}
}

var _ modkit.APIModule = (*Module)(nil)

// MountRoutes mounts extra routes given through modkit.WithRegister; sources has no pages
func (m *Module) MountRoutes(r phttp.Router) { m.b.Mount(r, func(phttp.Router) {}) }

// MountAPI mounts the JSON endpoints
func (m *Module) MountAPI(r phttp.Router) { srchttp.Register(r, m.cat) }

// Ports returns Ports
func (m *Module) Ports() any { return Ports{Catalog: m.cat} }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
