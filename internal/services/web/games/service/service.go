// Package service loads games, reviews and chart data and reshapes them for the pages
package service

import (
	"context"
	"errors"
	"html/template"
	"sort"
	"strings"
	"time"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/core/chart"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/metrics"
	pnet "reviewlens/internal/platform/net"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/services/web/games/domain"
	"reviewlens/internal/ui"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
)

// Plot canvas
const (
	PlotWidth  = 720
	PlotHeight = 260
)

// Service defines the games service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	api     domain.Backend
	summary domain.SummarySource
	catalog domain.Catalog
	prefs   domain.ColorPrefs
	policy  *bluemonday.Policy
}

var _ Service = (*Svc)(nil)

// Option customises Svc
type Option func(*Svc)

// WithColorPrefs reads per user colour overrides from p
func WithColorPrefs(p domain.ColorPrefs) Option { return func(s *Svc) { s.prefs = p } }

// WithCatalog lists sources from c on the reviews page
func WithCatalog(c domain.Catalog) Option { return func(s *Svc) { s.catalog = c } }

// New constructs the games service
func New(api domain.Backend, summary domain.SummarySource, opts ...Option) *Svc {
	if api == nil || summary == nil {
		panic("games.Service requires a Backend and a SummarySource")
	}
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	s := &Svc{api: api, summary: summary, policy: p}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List returns one page of games
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	page, limit := paging(q.Page, q.Limit, domain.DefaultLimit)
	f := backend.GameFilter{
		Limit:        limit,
		Offset:       (page - 1) * limit,
		Name:         strings.TrimSpace(q.Name),
		Sort:         q.Sort,
		MinScore:     q.MinScore,
		MaxScore:     q.MaxScore,
		MinReviews:   q.MinReviews,
		MaxReviews:   q.MaxReviews,
		MinRelease:   parseDay(q.MinRelease),
		MaxRelease:   parseDay(q.MaxRelease),
		CategoryIDs:  q.Categories,
		DeveloperIDs: q.Developers,
	}
	if f.Sort == "" {
		f.Sort = domain.DefaultSort
	}
	if f.MinScore != nil && f.MaxScore != nil && *f.MinScore > *f.MaxScore {
		return domain.List{}, perr.WithField(perr.Validationf("min score is above max score"), "min_score")
	}
	if !f.MinRelease.IsZero() && !f.MaxRelease.IsZero() && f.MinRelease.After(f.MaxRelease) {
		return domain.List{}, perr.WithField(perr.Validationf("release range is reversed"), "min_release")
	}

	res, err := s.api.Games(ctx, f)
	if err != nil {
		return domain.List{}, err
	}
	pg := phttp.Page{Total: int(res.Total()), Page: page, PageSize: limit}
	return domain.List{Sorts: domain.Sorts, Page: pg, Pages: pg.Pages(), Games: res.Games}, nil
}

// overviewData is everything the overview loads concurrently
type overviewData struct {
	game    *backend.Game
	summary chart.SummaryByDate
	sources []chart.Source
	aspects chart.AspectsByDate
	cloud   *backend.WordCloud
}

func (s *Svc) load(ctx context.Context, id int, withGame, withExtras bool) (overviewData, error) {
	var d overviewData
	g, gctx := errgroup.WithContext(ctx)
	if withGame {
		g.Go(func() (err error) {
			d.game, err = s.api.Game(gctx, id)
			return err
		})
	}
	g.Go(func() (err error) {
		d.summary, err = s.summary.Summary(gctx, id, domain.SummaryBucket)
		return err
	})
	g.Go(func() (err error) {
		d.sources, err = s.api.GameSources(gctx, id)
		return err
	})
	if withExtras {
		// aspects and terms are optional; a failure leaves the section empty
		g.Go(func() error {
			a, err := s.api.AspectSummary(gctx, id)
			if err != nil {
				logger.C(ctx).Warn().Err(err).Int("game_id", id).Msg("aspect summary unavailable")
				return nil
			}
			d.aspects = a
			return nil
		})
		g.Go(func() error {
			c, err := s.api.WordCloud(gctx, id)
			if err != nil {
				logger.C(ctx).Warn().Err(err).Int("game_id", id).Msg("wordcloud unavailable")
				return nil
			}
			d.cloud = c
			return nil
		})
	}
	return d, g.Wait()
}

// Overview loads the game page
func (s *Svc) Overview(ctx context.Context, id int, q domain.OverviewQuery) (domain.Overview, error) {
	if err := validID(id); err != nil {
		return domain.Overview{}, err
	}
	d, err := s.load(ctx, id, true, true)
	if err != nil {
		return domain.Overview{}, err
	}

	iv := domain.DefaultBucket
	if q.Interval != "" {
		if iv, err = chart.ParseInterval(q.Interval); err != nil {
			return domain.Overview{}, perr.WithField(perr.InvalidArgf("%v", err), "interval")
		}
	}
	srcs, types := selection(d.sources, q.Sources, q.Types)
	data, err := s.reshape(ctx, d.summary, d.sources, srcs, types, chart.Calendar(iv), time.Time{}, time.Time{})
	if err != nil {
		return domain.Overview{}, err
	}

	out := domain.Overview{
		Game:            d.game,
		Interval:        string(iv),
		Intervals:       domain.Intervals,
		Sources:         d.sources,
		SelectedSources: srcs,
		SelectedTypes:   types,
		Types:           chart.Polarities,
		Chart:           data,
	}
	if out.Plot, err = ui.LinePlot(data.Rows, data.Keys(), data.Colors, PlotWidth, PlotHeight); err != nil {
		logger.C(ctx).Warn().Err(err).Int("game_id", id).Msg("plot not drawn")
	}
	if out.AspectTotals, err = aspectTotals(d.aspects); err != nil {
		logger.C(ctx).Warn().Err(err).Int("game_id", id).Msg("aspect summary unreadable")
	}
	out.Clouds = clouds(d.cloud)
	return out, nil
}

// Chart returns the reshaped chart alone
func (s *Svc) Chart(ctx context.Context, id int, q domain.ChartQuery) (domain.ChartData, error) {
	if err := validID(id); err != nil {
		return domain.ChartData{}, err
	}
	mode, err := modeOf(q.Interval, q.Points)
	if err != nil {
		return domain.ChartData{}, err
	}
	from, to := parseDay(q.From), parseDay(q.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return domain.ChartData{}, perr.WithField(perr.Validationf("from is after to"), "from")
	}
	d, err := s.load(ctx, id, false, false)
	if err != nil {
		return domain.ChartData{}, err
	}
	srcs, types := selection(d.sources, q.Sources, q.Types)
	return s.reshape(ctx, d.summary, d.sources, srcs, types, mode, from, to)
}

// AspectChart returns the dense aspect series per category
func (s *Svc) AspectChart(ctx context.Context, id int, q domain.AspectQuery) (domain.AspectChart, error) {
	if err := validID(id); err != nil {
		return domain.AspectChart{}, err
	}
	mode, err := modeOf(q.Interval, q.Points)
	if err != nil {
		return domain.AspectChart{}, err
	}
	raw, err := s.api.AspectSummary(ctx, id)
	if err != nil {
		return domain.AspectChart{}, err
	}
	pts, err := chart.AspectPointsFromSummary(raw)
	if err != nil {
		return domain.AspectChart{}, perr.Wrap(err, perr.ErrorCodeUpstream, "aspect summary has a bad date")
	}
	start := time.Now()
	series, err := chart.ReshapeAspects(pts, mode)
	metrics.ObserveReshape("aspects_"+modeLabel(mode), time.Since(start))
	if err != nil {
		return domain.AspectChart{}, reshapeErr(err)
	}
	return domain.AspectChart{Mode: mode.String(), Categories: chart.Categories(series), Series: series}, nil
}

func (s *Svc) reshape(ctx context.Context, sum chart.SummaryByDate, sources []chart.Source, srcs, types []string, mode chart.Mode, from, to time.Time) (domain.ChartData, error) {
	pts, err := chart.PointsFromSummary(sum)
	if err != nil {
		return domain.ChartData{}, perr.Wrap(err, perr.ErrorCodeUpstream, "review summary has a bad date")
	}
	pts = clip(pts, from, to)

	start := time.Now()
	rows, err := chart.ReshapeWithin(pts, sources, srcs, types, mode, from, to)
	metrics.ObserveReshape(modeLabel(mode), time.Since(start))
	if err != nil {
		return domain.ChartData{}, reshapeErr(err)
	}
	return domain.ChartData{
		Mode:    mode.String(),
		Sources: srcs,
		Types:   types,
		Colors:  chart.GenerateColorMap(srcs, types, s.overrides(ctx)),
		Rows:    rows,
	}, nil
}

// overrides returns the signed in user's colours; failures fall back to the palette
func (s *Svc) overrides(ctx context.Context) map[string]string {
	if s.prefs == nil || pnet.Token(ctx) == "" {
		return nil
	}
	u := pnet.User(ctx)
	if u == nil {
		var err error
		if u, err = s.api.CurrentUser(ctx); err != nil || u == nil {
			logger.C(ctx).Debug().Err(err).Msg("colour overrides skipped: no user")
			return nil
		}
	}
	o, err := s.prefs.Overrides(ctx, u.ID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("load colour overrides")
		return nil
	}
	return o
}

// Reviews returns one page of reviews of game id
func (s *Svc) Reviews(ctx context.Context, id int, q domain.ReviewsQuery) (domain.ReviewsPage, error) {
	if err := validID(id); err != nil {
		return domain.ReviewsPage{}, err
	}
	page, limit := paging(q.Page, q.Limit, domain.ReviewsLimit)

	var (
		game *backend.Game
		res  *backend.ReviewList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		game, err = s.api.Game(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		res, err = s.api.Reviews(gctx, backend.ReviewFilter{
			GameID:     id,
			Skip:       (page - 1) * limit,
			Limit:      limit,
			SourceIDs:  q.Sources,
			Aspects:    q.Aspects,
			Polarities: q.Polarities,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ReviewsPage{}, err
	}

	var sources []chart.Source
	if s.catalog != nil {
		sources = s.catalog.All()
	}
	names := chart.SourceNames(sources)
	views := make([]domain.ReviewView, 0, len(res.Reviews))
	for _, r := range res.Reviews {
		views = append(views, s.reviewView(r, names))
	}
	pg := phttp.Page{Total: int(res.Total), Page: page, PageSize: limit}
	return domain.ReviewsPage{
		Game:               game,
		Sources:            sources,
		Aspects:            backend.Aspects,
		SelectedAspects:    q.Aspects,
		Polarities:         chart.Polarities,
		SelectedPolarities: q.Polarities,
		Page:               pg,
		Pages:              pg.Pages(),
		Reviews:            views,
	}, nil
}

func (s *Svc) reviewView(r backend.Review, names map[int]string) domain.ReviewView {
	v := domain.ReviewView{
		Source:    "Unknown source",
		CreatedAt: r.CreatedAt.Time,
		Language:  r.Language,
		Summary:   r.Summary,
		HTML:      template.HTML(strings.ReplaceAll(s.policy.Sanitize(r.Text), "\n", "<br>\n")),
	}
	if r.Source != nil {
		v.Source = r.Source.Name
		if v.Source == "" {
			v.Source = names[r.Source.ID]
		}
	}
	seen := make(map[string]bool, len(r.Aspects))
	for _, a := range r.Aspects {
		k := a.Category + "/" + a.Polarity
		if a.Category == "" || seen[k] {
			continue
		}
		seen[k] = true
		v.Aspects = append(v.Aspects, domain.AspectTag{Label: ui.Label(a.Category), Polarity: a.Polarity})
	}
	return v
}

// SearchCategories proxies the category lookup
func (s *Svc) SearchCategories(ctx context.Context, q string) ([]backend.Named, error) {
	return s.api.SearchCategories(ctx, strings.TrimSpace(q))
}

// SearchDevelopers proxies the developer lookup
func (s *Svc) SearchDevelopers(ctx context.Context, q string) ([]backend.Named, error) {
	return s.api.SearchDevelopers(ctx, strings.TrimSpace(q))
}

// selection keeps the requested sources this game has, plus all, defaulting to all and every polarity
func selection(sources []chart.Source, reqSources, reqTypes []string) ([]string, []string) {
	known := map[string]bool{chart.AllSource: true}
	for _, src := range sources {
		known[src.Name] = true
	}
	var srcs []string
	seen := map[string]bool{}
	for _, name := range reqSources {
		if known[name] && !seen[name] {
			seen[name] = true
			srcs = append(srcs, name)
		}
	}
	if len(srcs) == 0 {
		srcs = []string{chart.AllSource}
	}

	var types []string
	seen = map[string]bool{}
	for _, t := range reqTypes {
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = append([]string(nil), chart.Polarities...)
	}
	return srcs, types
}

func modeOf(interval string, points int) (chart.Mode, error) {
	if points > 0 {
		if interval != "" {
			return chart.Mode{}, perr.WithField(perr.Validationf("use either interval or points"), "points")
		}
		return chart.Fixed(points), nil
	}
	if interval == "" {
		return chart.Calendar(domain.DefaultBucket), nil
	}
	iv, err := chart.ParseInterval(interval)
	if err != nil {
		return chart.Mode{}, perr.WithField(perr.InvalidArgf("%v", err), "interval")
	}
	return chart.Calendar(iv), nil
}

// modeLabel keeps metric labels bounded
func modeLabel(m chart.Mode) string {
	if m.Kind == chart.KindFixed {
		return "fixed"
	}
	return string(m.Interval)
}

func reshapeErr(err error) error {
	if errors.Is(err, chart.ErrGridTooLarge) {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "date range is too wide for this bucket size")
	}
	return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "chart could not be built")
}

// clip drops points outside [from, to]; zero bounds are open
func clip(pts []chart.RawDataPoint, from, to time.Time) []chart.RawDataPoint {
	if from.IsZero() && to.IsZero() {
		return pts
	}
	end := to.AddDate(0, 0, 1)
	out := pts[:0:0]
	for _, p := range pts {
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !p.Date.Before(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func aspectTotals(raw chart.AspectsByDate) ([]domain.AspectTotal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pts, err := chart.AspectPointsFromSummary(raw)
	if err != nil {
		return nil, err
	}
	sums := map[string]chart.PolarityCounts{}
	for _, p := range pts {
		for cat, c := range p.Categories {
			sums[cat] = sums[cat].Add(c)
		}
	}
	out := make([]domain.AspectTotal, 0, len(sums))
	for _, cat := range backend.Aspects {
		if c, ok := sums[cat]; ok {
			out = append(out, domain.AspectTotal{Category: cat, Counts: c})
			delete(sums, cat)
		}
	}
	rest := make([]string, 0, len(sums))
	for cat := range sums {
		rest = append(rest, cat)
	}
	sort.Strings(rest)
	for _, cat := range rest {
		out = append(out, domain.AspectTotal{Category: cat, Counts: sums[cat]})
	}
	return out, nil
}

func clouds(wc *backend.WordCloud) []domain.Cloud {
	if wc == nil {
		return nil
	}
	var out []domain.Cloud
	for _, cat := range backend.Aspects {
		c := domain.Cloud{
			Category: cat,
			Positive: wc.Top(cat, "positive", domain.CloudTerms),
			Negative: wc.Top(cat, "negative", domain.CloudTerms),
		}
		if len(c.Positive)+len(c.Negative) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func paging(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	return page, limit
}

// parseDay reads a validated YYYY-MM-DD; blank is zero
func parseDay(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func validID(id int) error {
	if id <= 0 {
		return perr.WithField(perr.InvalidArgf("game id must be positive"), "id")
	}
	return nil
}
