package domain

import (
	"context"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/core/chart"
	pnet "reviewlens/internal/platform/net"
)

// Backend is the slice of the sentiment API the games pages need
type Backend interface {
	Games(ctx context.Context, f backend.GameFilter) (*backend.GameList, error)
	Game(ctx context.Context, id int) (*backend.Game, error)
	GameSources(ctx context.Context, id int) ([]chart.Source, error)
	AspectSummary(ctx context.Context, id int) (chart.AspectsByDate, error)
	WordCloud(ctx context.Context, id int) (*backend.WordCloud, error)
	SearchCategories(ctx context.Context, name string) ([]backend.Named, error)
	SearchDevelopers(ctx context.Context, name string) ([]backend.Named, error)
	Reviews(ctx context.Context, f backend.ReviewFilter) (*backend.ReviewList, error)
	CurrentUser(ctx context.Context) (*pnet.Principal, error)
}

// SummarySource serves per date review counts; the backend or the ClickHouse rollup
type SummarySource interface {
	Summary(ctx context.Context, gameID int, interval string) (chart.SummaryByDate, error)
}

// Catalog is the process wide source table
type Catalog interface {
	All() []chart.Source
}

// ColorPrefs returns a user's chart colour overrides
type ColorPrefs interface {
	Overrides(ctx context.Context, userID string) (map[string]string, error)
}

// ServicePort is consumed by the handlers
type ServicePort interface {
	List(ctx context.Context, q ListQuery) (List, error)
	Overview(ctx context.Context, id int, q OverviewQuery) (Overview, error)
	Chart(ctx context.Context, id int, q ChartQuery) (ChartData, error)
	AspectChart(ctx context.Context, id int, q AspectQuery) (AspectChart, error)
	Reviews(ctx context.Context, id int, q ReviewsQuery) (ReviewsPage, error)
	SearchCategories(ctx context.Context, q string) ([]backend.Named, error)
	SearchDevelopers(ctx context.Context, q string) ([]backend.Named, error)
}
