// Package module wires the games pages and JSON endpoints
package module

import (
	"reviewlens/internal/adapters/reviewsch"
	"reviewlens/internal/modkit"
	"reviewlens/internal/platform/logger"
	phttp "reviewlens/internal/platform/net/http"
	str "reviewlens/internal/platform/strings"
	"reviewlens/internal/services/web/games/domain"
	gameshttp "reviewlens/internal/services/web/games/http"
	gamessvc "reviewlens/internal/services/web/games/service"
)

// Summary sources selectable through SUMMARY_SOURCE
const (
	SummaryBackend    = "backend"
	SummaryClickhouse = "clickhouse"
)

// Wiring is what the games module takes from other modules
type Wiring struct {
	Catalog domain.Catalog
	Prefs   domain.ColorPrefs
}

// Module implements modkit.APIModule
type Module struct {
	b    modkit.Built
	deps modkit.Deps
	svc  *gamessvc.Svc
}

var _ modkit.APIModule = (*Module)(nil)

// New constructs the games module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("games")}, opts...)
	var w Wiring
	if pw, ok := b.Ports.(Wiring); ok {
		w = pw
	}

	var summary domain.SummarySource = deps.Backend
	if deps.HasCH() && deps.Cfg.MayEnum("SUMMARY_SOURCE", SummaryBackend, SummaryBackend, SummaryClickhouse) == SummaryClickhouse {
		summary = reviewsch.New(deps.CH)
		logger.Named("games").Info().Str("table", reviewsch.Table).Msg("review summary served from clickhouse")
	}

	var sopts []gamessvc.Option
	if w.Catalog != nil {
		sopts = append(sopts, gamessvc.WithCatalog(w.Catalog))
	}
	if w.Prefs != nil {
		sopts = append(sopts, gamessvc.WithColorPrefs(w.Prefs))
	}
	return &Module{b: b, deps: deps, svc: gamessvc.New(deps.Backend, summary, sopts...)}
}

// MountRoutes mounts the pages at the router root
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(sub phttp.Router) { gameshttp.Register(sub, m.svc, m.deps.Pages) })
}

// MountAPI mounts the JSON endpoints
func (m *Module) MountAPI(r phttp.Router) { gameshttp.RegisterAPI(r, m.svc) }

// Ports returns nil; games exposes nothing to other modules
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
