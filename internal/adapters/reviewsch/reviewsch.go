// Package reviewsch serves review summaries from the ClickHouse daily rollup
package reviewsch

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"reviewlens/internal/core/chart"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/store"
)

// Table is the rollup the summaries read
const Table = "review_daily_counts"

//go:embed schema.sql
var schemaDDL string

// truncations maps summary intervals to ClickHouse date truncation
// week mode 0 starts weeks on Sunday, matching the chart grid
var truncations = map[string]string{
	"day":   "toDate(day)",
	"week":  "toStartOfWeek(day, 0)",
	"month": "toStartOfMonth(day)",
	"year":  "toStartOfYear(day)",
}

// Source reads summaries out of ClickHouse
type Source struct {
	ch store.Clickhouse
}

// New returns a Source over ch
func New(ch store.Clickhouse) *Source {
	if ch == nil {
		panic("reviewsch: nil clickhouse")
	}
	return &Source{ch: ch}
}

// EnsureSchema creates the rollup table when missing
func (s *Source) EnsureSchema(ctx context.Context) error {
	if err := s.ch.Exec(ctx, schemaDDL); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "create "+Table)
	}
	return nil
}

// Summary returns per date, per source sentiment counts for a game
// hour is not available from a daily rollup
func (s *Source) Summary(ctx context.Context, gameID int, interval string) (chart.SummaryByDate, error) {
	trunc, ok := truncations[interval]
	if !ok {
		return nil, perr.WithField(perr.InvalidArgf("interval %q is not served from the rollup", interval), "interval")
	}
	sql := fmt.Sprintf(`
SELECT toString(%s) AS bucket, toInt64(source_id) AS source_id, sentiment, toInt64(sum(reviews)) AS reviews
FROM %s
WHERE game_id = ?
GROUP BY bucket, source_id, sentiment
ORDER BY bucket ASC, source_id ASC
`, trunc, Table)

	rows, err := s.ch.Query(ctx, sql, gameID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "query review summary")
	}
	defer rows.Close()

	out := chart.SummaryByDate{}
	for rows.Next() {
		var (
			bucket    string
			sourceID  int64
			sentiment string
			n         int64
		)
		if err := rows.Scan(&bucket, &sourceID, &sentiment, &n); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan review summary")
		}
		bySource, ok := out[bucket]
		if !ok {
			bySource = map[int]map[string]int64{}
			out[bucket] = bySource
		}
		counts, ok := bySource[int(sourceID)]
		if !ok {
			counts = map[string]int64{}
			bySource[int(sourceID)] = counts
		}
		counts[sentiment] += n
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "read review summary")
	}
	return out, nil
}

// Record adds review counts for one day; rows are summed on merge
func (s *Source) Record(ctx context.Context, day time.Time, gameID, sourceID int, counts map[string]int64) error {
	rows := make([][]any, 0, len(counts))
	for sentiment, n := range counts {
		if n <= 0 {
			continue
		}
		rows = append(rows, []any{day.UTC(), uint32(gameID), uint32(sourceID), sentiment, uint64(n)})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.ch.Insert(ctx, Table, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "insert review counts")
	}
	return nil
}
