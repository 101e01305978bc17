package reviewsch

import (
	"context"

	"reviewlens/internal/core/chart"
	perr "reviewlens/internal/platform/errors"
)

// Summarizer is the day summary source a game is loaded from
type Summarizer interface {
	Summary(ctx context.Context, id int, interval string) (chart.SummaryByDate, error)
}

// Forget drops every rollup row of a game; the mutation is synchronous
func (s *Source) Forget(ctx context.Context, gameID int) error {
	sql := "ALTER TABLE " + Table + " DELETE WHERE game_id = ? SETTINGS mutations_sync = 1"
	if err := s.ch.Exec(ctx, sql, gameID); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "forget game rollup")
	}
	return nil
}

// Load replaces a game's rollup with the day summary from src and returns the days written
func (s *Source) Load(ctx context.Context, src Summarizer, gameID int) (int, error) {
	sum, err := src.Summary(ctx, gameID, "day")
	if err != nil {
		return 0, err
	}
	if err := s.Forget(ctx, gameID); err != nil {
		return 0, err
	}
	days := 0
	for ds, bySource := range sum {
		day, err := chart.ParseDate(ds)
		if err != nil {
			return days, err
		}
		for sourceID, counts := range bySource {
			if err := s.Record(ctx, day, gameID, sourceID, counts); err != nil {
				return days, err
			}
		}
		days++
	}
	return days, nil
}
