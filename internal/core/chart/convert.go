package chart

import "sort"

// SummaryByDate is the backend review summary keyed by date string, then source id, then type
type SummaryByDate map[string]map[int]map[string]int64

// PointsFromSummary flattens a summary into raw points ordered by date then source id
func PointsFromSummary(in SummaryByDate) ([]RawDataPoint, error) {
	out := make([]RawDataPoint, 0, len(in))
	for ds, bySource := range in {
		d, err := ParseDate(ds)
		if err != nil {
			return nil, err
		}
		for id, counts := range bySource {
			out = append(out, RawDataPoint{Date: d, SourceID: id, Counts: counts})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].SourceID < out[j].SourceID
	})
	return out, nil
}

// AspectsByDate is the backend aspect summary keyed by date string, then category
type AspectsByDate map[string]map[string]PolarityCounts

// AspectPointsFromSummary parses an aspect summary into points ordered by date
func AspectPointsFromSummary(in AspectsByDate) ([]AspectPoint, error) {
	out := make([]AspectPoint, 0, len(in))
	for ds, cats := range in {
		d, err := ParseDate(ds)
		if err != nil {
			return nil, err
		}
		out = append(out, AspectPoint{Date: d, Categories: cats})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
