// Package web composes the site: HTML pages at the root, JSON under /api/v1
package web

import (
	"context"
	"time"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/core/chart"
	"reviewlens/internal/core/version"
	"reviewlens/internal/modkit"
	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/modkit/module"
	"reviewlens/internal/modkit/swaggerkit"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/net/middleware"
	"reviewlens/internal/platform/store"

	accountmod "reviewlens/internal/services/web/account/module"
	authmod "reviewlens/internal/services/web/auth/module"
	gamesmod "reviewlens/internal/services/web/games/module"
	homemod "reviewlens/internal/services/web/home/module"
	metamod "reviewlens/internal/services/web/meta/module"
	sourcesmod "reviewlens/internal/services/web/sources/module"
)

// ConfigPrefix scopes the settings read by the web modules
const ConfigPrefix = "REVIEWLENS_WEB_"

// Options are the site options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Backend        backend.API
	Pages          phttp.Renderer
	EnableSwagger  bool
	EnableProfiler bool
}

// Background runs the site's long lived workers until ctx is done
type Background func(ctx context.Context) error

// Mount mounts every module onto r and returns the workers the caller must run
func Mount(r phttp.Router, opt Options) Background {
	cfg := opt.Config.Prefix(ConfigPrefix)
	deps := modkit.Deps{
		Log:     *logger.Named("web"),
		Cfg:     cfg,
		Backend: opt.Backend,
		Pages:   opt.Pages,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// sources first; account and games both read its catalog
	sources := sourcesmod.New(deps)
	catalog := module.MustPortsOf[sourcesmod.Ports](sources).Catalog

	account := accountmod.New(deps, modkit.WithPorts(accountmod.Wiring{
		Keys: func() []string { return seriesKeys(catalog.All()) },
	}))
	prefs := module.MustPortsOf[accountmod.Ports](account).Prefs

	mods := []modkit.Module{
		metamod.New(deps),
		sources,
		account,
		gamesmod.New(deps, modkit.WithPorts(gamesmod.Wiring{Catalog: catalog, Prefs: prefs})),
		authmod.New(deps),
		homemod.New(deps),
	}

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		Timeout:      cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		Slow:         cfg.MayDuration("SLOW_REQUEST", time.Second),
		Resolver:     opt.Backend,
		ResolvePaths: append(append([]string{}, middleware.DefaultResolvePaths...), "/users/me/colors"),
	})...)

	if opt.EnableSwagger {
		swaggerkit.Register(stampVersion)
	}
	swaggerkit.Mount(r, opt.EnableSwagger, httpkit.APIPrefix("v1"))
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", metrics.Handler())

	for _, m := range mods {
		module.Publish(m)
		m.MountRoutes(r)
	}

	httpkit.MountAPIV1(r, httpkit.APIStack(httpkit.APIOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			MaxAge:         cfg.MayInt("CORS_MAX_AGE", 300),
		},
		RateLimit: middleware.RateLimitOptions{
			Requests: cfg.MayInt("API_RATE_LIMIT", 120),
			Window:   cfg.MayDuration("API_RATE_WINDOW", time.Minute),
		},
	}), func(api httpkit.Router) {
		for _, m := range mods {
			if am, ok := m.(modkit.APIModule); ok {
				am.MountAPI(api)
			}
		}
	})

	return catalog.Run
}

// stampVersion reports the running build in the document info block
func stampVersion(spec map[string]any) {
	if info, ok := spec["info"].(map[string]any); ok {
		info["version"] = version.Info().Version
	}
}

// seriesKeys lists every chart series a user can colour: each source and "all", by polarity
func seriesKeys(sources []chart.Source) []string {
	names := make([]string, 0, len(sources)+1)
	names = append(names, chart.AllSource)
	for _, s := range sources {
		names = append(names, s.Name)
	}
	out := make([]string, 0, len(names)*len(chart.Polarities))
	for _, n := range names {
		for _, p := range chart.Polarities {
			out = append(out, chart.FieldKey(n, p))
		}
	}
	return out
}
