// Package chart reshapes sparse per date review counts into dense rows ready for plotting
//
// Rows are keyed by bucket timestamp and carry one counter per selected
// source and sentiment type, plus the synthetic "all" source.
package chart

import (
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// AllSource is the synthetic source that aggregates every resolvable point
const AllSource = "all"

// RawDataPoint is a single backend aggregate for one date and one source
type RawDataPoint struct {
	Date     time.Time
	SourceID int
	Counts   map[string]int64
}

// Source maps a backend source id to its display name
type Source struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BucketedRow is one dense chart row
// Counts is keyed by FieldKey(source, type)
type BucketedRow struct {
	Date   time.Time
	Counts map[string]int64
}

// FieldKey returns the row key for a source and sentiment type
func FieldKey(source, typ string) string { return source + "_" + typ }

// Get returns the counter for source and type, zero when absent
func (r BucketedRow) Get(source, typ string) int64 { return r.Counts[FieldKey(source, typ)] }

// MarshalJSON flattens the counters next to the date the way charting libs expect
func (r BucketedRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Counts)+1)
	for k, v := range r.Counts {
		flat[k] = v
	}
	flat["date"] = r.Date.Format(time.RFC3339)
	return json.Marshal(flat)
}

// SourceNames returns an id to name lookup for sources
func SourceNames(sources []Source) map[int]string {
	out := make(map[int]string, len(sources))
	for _, s := range sources {
		out[s.ID] = s.Name
	}
	return out
}

// SourceIDKey renders a source id the way the backend keys it in summaries
func SourceIDKey(id int) string { return strconv.Itoa(id) }
