// @title         ReviewLens
// @version       0.1.0
// @description   Game review sentiment charts and lookups

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/core/version"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/store"
	"reviewlens/internal/services/web"
	"reviewlens/internal/ui"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// a missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	root := config.New().Prefix("REVIEWLENS_")
	logOpts := logger.FromEnv()
	logOpts.Service = version.Service
	logger.Init(logOpts)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stCfg := store.ConfigFrom(root, version.Service)
	stCfg.Version = version.Info().Version
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	api, err := backend.New(backend.FromConfig(root.Prefix("BACKEND_")), nil)
	if err != nil {
		l.Fatal().Err(err).Msg("backend client")
	}

	webCfg := root.Prefix("WEB_")
	srv := phttp.NewServer(webCfg)
	background := web.Mount(srv.Router(), web.Options{
		Config:         config.New(),
		Store:          st,
		Backend:        api,
		Pages:          ui.MustNew(),
		EnableSwagger:  webCfg.MayBool("SWAGGER", true),
		EnableProfiler: webCfg.MayBool("PROFILER", false),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return background(gctx) })
	if err := g.Wait(); err != nil {
		l.Fatal().Err(err).Msg("reviewlens-web stopped")
	}
	l.Info().Msg("bye")
}
