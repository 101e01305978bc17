package backend

import (
	"context"
	"net/url"
	"strconv"

	"reviewlens/internal/core/chart"
	perr "reviewlens/internal/platform/errors"
)

// Summary intervals the backend accepts
var summaryIntervals = map[string]bool{"hour": true, "day": true, "week": true, "month": true, "year": true}

func gamePath(id int, rest string) string { return "/games/" + strconv.Itoa(id) + rest }

// Games lists games matching f
func (c *Client) Games(ctx context.Context, f GameFilter) (*GameList, error) {
	var out GameList
	if err := c.do(ctx, getCall("games.list", "/games/", f.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Game fetches one game
func (c *Client) Game(ctx context.Context, id int) (*Game, error) {
	var out Game
	if err := c.do(ctx, getCall("games.get", gamePath(id, ""), nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GameSources lists the sources that carry reviews for a game
func (c *Client) GameSources(ctx context.Context, id int) ([]chart.Source, error) {
	var out []chart.Source
	if err := c.do(ctx, getCall("games.sources", gamePath(id, "/sources"), nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// summaryReply mirrors {data: {date: {sources: {id: {type: n}}, <type>: total}}}
// the per date totals are dropped since Reshape recomputes them
type summaryReply struct {
	Data map[string]struct {
		Sources map[string]map[string]int64 `json:"sources"`
	} `json:"data"`
}

// Summary fetches per date, per source review counts for a game
func (c *Client) Summary(ctx context.Context, id int, interval string) (chart.SummaryByDate, error) {
	if !summaryIntervals[interval] {
		return nil, perr.WithField(perr.InvalidArgf("unknown interval %q", interval), "interval")
	}
	var rep summaryReply
	if err := c.do(ctx, getCall("games.summary", gamePath(id, "/summary/v2/"+interval), nil), &rep); err != nil {
		return nil, err
	}
	out := make(chart.SummaryByDate, len(rep.Data))
	for date, day := range rep.Data {
		bySource := make(map[int]map[string]int64, len(day.Sources))
		for key, counts := range day.Sources {
			sid, err := strconv.Atoi(key)
			if err != nil {
				return nil, perr.Upstreamf("summary source id %q is not numeric", key)
			}
			bySource[sid] = counts
		}
		out[date] = bySource
	}
	return out, nil
}

type aspectReply map[string]struct {
	Categories map[string]chart.PolarityCounts `json:"categories"`
}

// AspectSummary fetches per date aspect polarity counts for a game
func (c *Client) AspectSummary(ctx context.Context, id int) (chart.AspectsByDate, error) {
	var rep aspectReply
	if err := c.do(ctx, getCall("games.aspects", gamePath(id, "/summary/aspects"), nil), &rep); err != nil {
		return nil, err
	}
	out := make(chart.AspectsByDate, len(rep))
	for date, v := range rep {
		out[date] = v.Categories
	}
	return out, nil
}

// WordCloud fetches the top aspect terms for a game
func (c *Client) WordCloud(ctx context.Context, id int) (*WordCloud, error) {
	var out WordCloud
	if err := c.do(ctx, getCall("games.wordcloud", gamePath(id, "/aspects/wordcloud"), nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchCategories looks up categories by name fragment
func (c *Client) SearchCategories(ctx context.Context, name string) ([]Named, error) {
	return c.search(ctx, "games.search.categories", "/games/search/categories", name)
}

// SearchDevelopers looks up developers by name fragment
func (c *Client) SearchDevelopers(ctx context.Context, name string) ([]Named, error) {
	return c.search(ctx, "games.search.developers", "/games/search/developers", name)
}

func (c *Client) search(ctx context.Context, endpoint, path, name string) ([]Named, error) {
	out := []Named{}
	if err := c.do(ctx, getCall(endpoint, path, url.Values{"name": {name}}), &out); err != nil {
		return nil, err
	}
	return out, nil
}
