package backend

import (
	"context"

	"reviewlens/internal/core/chart"
)

// Reviews lists reviews for a game
func (c *Client) Reviews(ctx context.Context, f ReviewFilter) (*ReviewList, error) {
	var out ReviewList
	if err := c.do(ctx, getCall("reviews.list", "/reviews/", f.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sources lists every review source the backend knows
func (c *Client) Sources(ctx context.Context) ([]chart.Source, error) {
	var out []chart.Source
	if err := c.do(ctx, getCall("sources.list", "/sources/", nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}
