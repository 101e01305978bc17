// Package domain holds the games queries, page models and ports
package domain

import (
	"html/template"
	"net/url"
	"time"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/core/chart"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/ui"
)

// Paging defaults
const (
	DefaultLimit   = 24
	MaxLimit       = 100
	ReviewsLimit   = 20
	CloudTerms     = 10
	SummaryBucket  = "day"
	DateLayout     = "2006-01-02"
	DefaultSort    = backend.SortReleaseDate + "=desc"
	DefaultBucket  = chart.Day
	MaxChartPoints = 1000
)

// Intervals offered by the chart bucket picker
var Intervals = []string{string(chart.Day), string(chart.Week), string(chart.Month), string(chart.Year)}

// ListQuery is the GET /games query
type ListQuery struct {
	Page       int      `form:"page" validate:"omitempty,min=1"`
	Limit      int      `form:"limit" validate:"omitempty,min=1,max=100"`
	Name       string   `form:"name" validate:"max=128"`
	Sort       string   `form:"sort" validate:"omitempty,oneof=name=asc name=desc score=asc score=desc num_reviews=asc num_reviews=desc release_date=asc release_date=desc"`
	MinScore   *float64 `form:"min_score" validate:"omitempty,min=0,max=1"`
	MaxScore   *float64 `form:"max_score" validate:"omitempty,min=0,max=1"`
	MinReviews *int64   `form:"min_reviews" validate:"omitempty,min=0"`
	MaxReviews *int64   `form:"max_reviews" validate:"omitempty,min=0"`
	MinRelease string   `form:"min_release" validate:"omitempty,datetime=2006-01-02"`
	MaxRelease string   `form:"max_release" validate:"omitempty,datetime=2006-01-02"`
	Categories []int    `form:"categories" validate:"max=20"`
	Developers []int    `form:"developers" validate:"max=20"`
}

// OverviewQuery selects what the overview chart shows
type OverviewQuery struct {
	Interval string   `form:"interval" validate:"omitempty,oneof=day week month year"`
	Sources  []string `form:"sources" validate:"max=32,dive,max=64"`
	Types    []string `form:"types" validate:"dive,oneof=positive negative neutral"`
}

// ChartQuery is the JSON chart query; points switches to fixed buckets
type ChartQuery struct {
	OverviewQuery
	Points int    `form:"points" validate:"omitempty,min=2,max=1000"`
	From   string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

// AspectQuery buckets the aspect series
type AspectQuery struct {
	Interval string `form:"interval" validate:"omitempty,oneof=day week month year"`
	Points   int    `form:"points" validate:"omitempty,min=2,max=1000"`
}

// ReviewsQuery is the GET /games/{id}/reviews query
type ReviewsQuery struct {
	Page       int      `form:"page" validate:"omitempty,min=1"`
	Limit      int      `form:"limit" validate:"omitempty,min=1,max=100"`
	Sources    []int    `form:"source" validate:"max=32"`
	Aspects    []string `form:"aspect" validate:"dive,oneof=overall gameplay performance_bugs price audio_visuals community"`
	Polarities []string `form:"polarity" validate:"dive,oneof=positive negative neutral"`
}

// SearchQuery is the category and developer lookup query
type SearchQuery struct {
	Q string `form:"q" validate:"required,max=64"`
}

// SortOption is one entry of the sort picker
type SortOption struct {
	Value string
	Label string
}

// Sorts in picker order
var Sorts = []SortOption{
	{DefaultSort, "Newest first"},
	{backend.SortReleaseDate + "=asc", "Oldest first"},
	{backend.SortScore + "=desc", "Best score"},
	{backend.SortScore + "=asc", "Worst score"},
	{backend.SortNumReviews + "=desc", "Most reviewed"},
	{backend.SortName + "=asc", "Name A to Z"},
	{backend.SortName + "=desc", "Name Z to A"},
}

// List is the games page model
type List struct {
	Params url.Values
	Sorts  []SortOption
	Page   phttp.Page
	Pages  int
	Games  []backend.GameListItem
}

// ChartData is the reshaped chart, also served as JSON
type ChartData struct {
	Mode    string              `json:"mode"`
	Sources []string            `json:"sources"`
	Types   []string            `json:"types"`
	Colors  map[string]string   `json:"colors"`
	Rows    []chart.BucketedRow `json:"rows"`
}

// Keys lists the plotted series in selection order
func (c ChartData) Keys() []string {
	out := make([]string, 0, len(c.Sources)*len(c.Types))
	for _, s := range c.Sources {
		for _, t := range c.Types {
			out = append(out, chart.FieldKey(s, t))
		}
	}
	return out
}

// AspectTotal sums one category over the whole range
type AspectTotal struct {
	Category string
	Counts   chart.PolarityCounts
}

// Cloud is the top terms of one category
type Cloud struct {
	Category string
	Positive []backend.TermCount
	Negative []backend.TermCount
}

// Overview is the game page model
type Overview struct {
	Game            *backend.Game
	Interval        string
	Intervals       []string
	Sources         []chart.Source
	SelectedSources []string
	SelectedTypes   []string
	Types           []string
	Plot            ui.Plot
	Chart           ChartData
	AspectTotals    []AspectTotal
	Clouds          []Cloud
}

// AspectChart is the JSON aspect series per category
type AspectChart struct {
	Mode       string                       `json:"mode"`
	Categories []string                     `json:"categories"`
	Series     map[string][]chart.AspectRow `json:"series"`
}

// AspectTag is one aspect chip under a review
type AspectTag struct {
	Label    string
	Polarity string
}

// ReviewView is a review ready for the template
type ReviewView struct {
	Source    string
	CreatedAt time.Time
	Language  string
	Summary   string
	HTML      template.HTML
	Aspects   []AspectTag
}

// ReviewsPage is the reviews page model
type ReviewsPage struct {
	Game               *backend.Game
	Params             url.Values
	Sources            []chart.Source
	Aspects            []string
	SelectedAspects    []string
	Polarities         []string
	SelectedPolarities []string
	Page               phttp.Page
	Pages              int
	Reviews            []ReviewView
}
