package modkit

import (
	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/modkit/repokit"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// PG and CH are nil when not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Backend is the sentiment API client
	Backend backend.API

	// Pages renders HTML templates
	Pages phttp.Renderer
}

// HasPG reports whether Postgres is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// HasCH reports whether ClickHouse is wired
func (d Deps) HasCH() bool { return d.CH != nil }
