package backend

import (
	"context"

	"reviewlens/internal/core/chart"
	pnet "reviewlens/internal/platform/net"
)

// API is the backend surface the services use
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (*pnet.Principal, error)
	CurrentUser(ctx context.Context) (*pnet.Principal, error)
	UpdateUser(ctx context.Context, id string, u UserUpdate) (*pnet.Principal, error)

	Games(ctx context.Context, f GameFilter) (*GameList, error)
	Game(ctx context.Context, id int) (*Game, error)
	GameSources(ctx context.Context, id int) ([]chart.Source, error)
	Summary(ctx context.Context, id int, interval string) (chart.SummaryByDate, error)
	AspectSummary(ctx context.Context, id int) (chart.AspectsByDate, error)
	WordCloud(ctx context.Context, id int) (*WordCloud, error)
	SearchCategories(ctx context.Context, name string) ([]Named, error)
	SearchDevelopers(ctx context.Context, name string) ([]Named, error)

	Reviews(ctx context.Context, f ReviewFilter) (*ReviewList, error)
	Sources(ctx context.Context) ([]chart.Source, error)

	Ping(ctx context.Context) error
}

var _ API = (*Client)(nil)
