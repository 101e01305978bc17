// Package service keeps the process wide sources catalog fresh
package service

import (
	"context"
	"maps"
	"sort"
	"strings"
	"time"

	"reviewlens/internal/core/chart"
	"reviewlens/internal/core/watch"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	"reviewlens/internal/services/web/sources/domain"

	"golang.org/x/sync/errgroup"
)

// DefaultRefresh is used when no interval is configured
const DefaultRefresh = 5 * time.Minute

// Catalog holds the backend source table behind a watch.Value
type Catalog struct {
	src   domain.Lister
	every time.Duration
	v     *watch.Value[map[int]chart.Source]
	log   logger.Logger
}

var _ domain.Catalog = (*Catalog)(nil)

// New returns an empty catalog refreshed from src every interval
func New(src domain.Lister, every time.Duration) *Catalog {
	if src == nil {
		panic("sources.Catalog requires a non nil Lister")
	}
	if every <= 0 {
		every = DefaultRefresh
	}
	return &Catalog{
		src:   src,
		every: every,
		v:     watch.New(map[int]chart.Source{}, watch.WithEqual(func(a, b map[int]chart.Source) bool { return maps.Equal(a, b) })),
		log:   logger.Named("sources").With().Logger(),
	}
}

// Refresh reloads the table; the stored map is only replaced on success
func (c *Catalog) Refresh(ctx context.Context) error {
	list, err := c.src.Sources(ctx)
	if err != nil {
		return err
	}
	next := make(map[int]chart.Source, len(list))
	for _, s := range list {
		next[s.ID] = s
	}
	c.v.Set(next)
	return nil
}

// Run refreshes on a ticker and logs changes until ctx is done
func (c *Catalog) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
			c.log.Warn().Err(err).Msg("initial sources load failed")
		}
		t := time.NewTicker(c.every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
					c.log.Warn().Err(err).Msg("sources refresh failed")
				}
			}
		}
	})

	g.Go(func() error {
		for m := range c.v.Updates(ctx) {
			metrics.SetCatalogSources(len(m))
			c.log.Info().Int("sources", len(m)).Uint64("version", c.v.Version()).Msg("sources catalog updated")
		}
		return nil
	})

	return g.Wait()
}

// Subscribe calls fn with the current table and on every change
func (c *Catalog) Subscribe(fn func(map[int]chart.Source)) (cancel func()) {
	return c.v.Subscribe(fn)
}

// All returns the sources ordered by id
func (c *Catalog) All() []chart.Source {
	m := c.v.Get()
	out := make([]chart.Source, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Name returns the display name for id
func (c *Catalog) Name(id int) (string, bool) {
	s, ok := c.v.Get()[id]
	return s.Name, ok
}

// ByName finds a source by case insensitive name
func (c *Catalog) ByName(name string) (chart.Source, bool) {
	for _, s := range c.v.Get() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return chart.Source{}, false
}

// Version increments whenever the table changes
func (c *Catalog) Version() uint64 { return c.v.Version() }
