package chart

import (
	"sort"
	"time"
)

// Polarities in display order
var Polarities = []string{"positive", "negative", "neutral"}

// PolarityCounts holds aspect mentions by polarity
type PolarityCounts struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

// Add returns the element wise sum
func (p PolarityCounts) Add(o PolarityCounts) PolarityCounts {
	return PolarityCounts{Positive: p.Positive + o.Positive, Negative: p.Negative + o.Negative, Neutral: p.Neutral + o.Neutral}
}

// Total is the sum of all polarities
func (p PolarityCounts) Total() int64 { return p.Positive + p.Negative + p.Neutral }

// AspectPoint is the per category polarity breakdown for one date
type AspectPoint struct {
	Date       time.Time
	Categories map[string]PolarityCounts
}

// AspectRow is one dense row of a category series
type AspectRow struct {
	Date time.Time `json:"date"`
	PolarityCounts
}

// ReshapeAspects returns a dense series per category seen in points
func ReshapeAspects(points []AspectPoint, mode Mode) (map[string][]AspectRow, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	out := make(map[string][]AspectRow)
	if len(points) == 0 {
		return out, nil
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
	grid, err := BuildBucketGrid(lo, hi, mode)
	if err != nil {
		return nil, err
	}

	var byDate map[int64]int
	if mode.Kind == KindCalendar {
		byDate = make(map[int64]int, len(grid))
		for i, d := range grid {
			byDate[d.UnixNano()] = i
		}
	}

	for _, p := range points {
		idx, err := bucketIndex(p.Date, grid, byDate, mode)
		if err != nil {
			return nil, err
		}
		for cat, counts := range p.Categories {
			series, ok := out[cat]
			if !ok {
				series = make([]AspectRow, len(grid))
				for i, d := range grid {
					series[i] = AspectRow{Date: d}
				}
				out[cat] = series
			}
			series[idx].PolarityCounts = series[idx].PolarityCounts.Add(counts)
		}
	}
	return out, nil
}

// Categories returns the category names of a reshaped aspect set, sorted by total mentions then name
func Categories(series map[string][]AspectRow) []string {
	totals := make(map[string]int64, len(series))
	names := make([]string, 0, len(series))
	for cat, rows := range series {
		names = append(names, cat)
		for _, r := range rows {
			totals[cat] += r.Total()
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
