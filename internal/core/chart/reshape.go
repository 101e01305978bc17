package chart

import (
	"sort"
	"time"
)

// EmptyRange is how far an empty grid reaches past now
const EmptyRange = 30 * 24 * time.Hour

var now = time.Now

// Reshape builds dense rows for the selected sources and types
//
// Points whose source id is not in sources are skipped. Every resolvable
// point also feeds the all_<type> counters, whether or not its source is
// selected. Types outside selectedTypes are ignored.
func Reshape(points []RawDataPoint, sources []Source, selectedSources, selectedTypes []string, mode Mode) ([]BucketedRow, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	lo, hi := dateRange(points, mode.loc())
	return reshape(points, sources, selectedSources, selectedTypes, mode, lo, hi)
}

// ReshapeWithin is Reshape over the grid spanning [from, to] rather than the
// points' own range. Zero bounds fall back to Reshape
func ReshapeWithin(points []RawDataPoint, sources []Source, selectedSources, selectedTypes []string, mode Mode, from, to time.Time) ([]BucketedRow, error) {
	if from.IsZero() || to.IsZero() {
		return Reshape(points, sources, selectedSources, selectedTypes, mode)
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	loc := mode.loc()
	return reshape(points, sources, selectedSources, selectedTypes, mode, from.In(loc), to.In(loc))
}

func reshape(points []RawDataPoint, sources []Source, selectedSources, selectedTypes []string, mode Mode, lo, hi time.Time) ([]BucketedRow, error) {
	grid, err := BuildBucketGrid(lo, hi, mode)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}

	keys := fieldKeys(selectedSources, selectedTypes)
	rows := make([]BucketedRow, len(grid))
	for i, d := range grid {
		counts := make(map[string]int64, len(keys))
		for _, k := range keys {
			counts[k] = 0
		}
		rows[i] = BucketedRow{Date: d, Counts: counts}
	}
	if len(points) == 0 {
		return rows, nil
	}

	names := SourceNames(sources)
	selected := make(map[string]bool, len(selectedSources))
	for _, s := range selectedSources {
		selected[s] = true
	}

	var byDate map[int64]int
	if mode.Kind == KindCalendar {
		byDate = make(map[int64]int, len(grid))
		for i, d := range grid {
			byDate[d.UnixNano()] = i
		}
	}

	for _, p := range points {
		name, ok := names[p.SourceID]
		if !ok {
			continue
		}
		idx, err := bucketIndex(p.Date, grid, byDate, mode)
		if err != nil {
			return nil, err
		}
		row := rows[idx].Counts
		for _, typ := range selectedTypes {
			c := p.Counts[typ]
			if c == 0 {
				continue
			}
			if selected[name] && name != AllSource {
				row[FieldKey(name, typ)] += c
			}
			row[FieldKey(AllSource, typ)] += c
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func bucketIndex(ts time.Time, grid []time.Time, byDate map[int64]int, mode Mode) (int, error) {
	if byDate != nil {
		if i, ok := byDate[Floor(ts, mode.Interval, mode.loc()).UnixNano()]; ok {
			return i, nil
		}
	}
	return nearestIndex(ts, grid)
}

// dateRange returns the min and max point dates, or now..now+EmptyRange
func dateRange(points []RawDataPoint, loc *time.Location) (time.Time, time.Time) {
	if len(points) == 0 {
		n := now().In(loc)
		return n, n.Add(EmptyRange)
	}
	lo, hi := points[0].Date, points[0].Date
	for _, p := range points[1:] {
		if p.Date.Before(lo) {
			lo = p.Date
		}
		if p.Date.After(hi) {
			hi = p.Date
		}
	}
	return lo, hi
}

// fieldKeys lists the row keys for the selection, all_<type> included once
func fieldKeys(selectedSources, selectedTypes []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, s := range selectedSources {
		for _, t := range selectedTypes {
			add(FieldKey(s, t))
		}
	}
	for _, t := range selectedTypes {
		add(FieldKey(AllSource, t))
	}
	return out
}
