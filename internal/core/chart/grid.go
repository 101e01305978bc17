package chart

import (
	"fmt"
	"time"
)

// MaxBuckets caps calendar grids, roughly 130 years of days
const MaxBuckets = 50_000

// Floor returns the start of the interval containing t, evaluated in loc
func Floor(t time.Time, iv Interval, loc *time.Location) time.Time {
	t = t.In(loc)
	y, mo, d := t.Date()
	switch iv {
	case Week:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	}
}

// Ceil returns t when it is already on a boundary, else the next boundary
func Ceil(t time.Time, iv Interval, loc *time.Location) time.Time {
	f := Floor(t, iv, loc)
	if f.Equal(t) {
		return f
	}
	return step(f, iv, loc)
}

// step advances a boundary by one interval using calendar arithmetic so DST days stay aligned
func step(t time.Time, iv Interval, loc *time.Location) time.Time {
	y, mo, d := t.Date()
	switch iv {
	case Week:
		return time.Date(y, mo, d+7, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo+1, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, mo, d+1, 0, 0, 0, 0, loc)
	}
}

// BuildBucketGrid returns the bucket timestamps spanning [min, max] for mode
func BuildBucketGrid(min, max time.Time, mode Mode) ([]time.Time, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if max.Before(min) {
		return nil, fmt.Errorf("%w: max %s before min %s", ErrInvalidMode, max.Format(time.RFC3339), min.Format(time.RFC3339))
	}
	loc := mode.loc()

	if mode.Kind == KindFixed {
		min, max = min.In(loc), max.In(loc)
		grid := make([]time.Time, mode.Count)
		last := int64(mode.Count - 1)
		// seconds and nanoseconds apart; a time.Duration saturates past ~292 years
		spanSec := max.Unix() - min.Unix()
		spanNsec := int64(max.Nanosecond() - min.Nanosecond())
		for i := range grid {
			k := int64(i)
			sec := spanSec * k / last
			nsec := (spanSec*k%last)*int64(time.Second)/last + spanNsec*k/last
			grid[i] = time.Unix(min.Unix()+sec, int64(min.Nanosecond())+nsec).In(loc)
		}
		// integer division drifts, pin the end
		grid[last] = max
		return grid, nil
	}

	start := Floor(min, mode.Interval, loc)
	end := Ceil(max, mode.Interval, loc)
	var grid []time.Time
	for t := start; !t.After(end); t = step(t, mode.Interval, loc) {
		if len(grid) == MaxBuckets {
			return nil, fmt.Errorf("%w: more than %d %s buckets", ErrGridTooLarge, MaxBuckets, mode.Interval)
		}
		grid = append(grid, t)
	}
	return grid, nil
}

// AssignToNearestBucket returns the grid entry closest to ts
// the first minimum wins on ties
func AssignToNearestBucket(ts time.Time, grid []time.Time) (time.Time, error) {
	i, err := nearestIndex(ts, grid)
	if err != nil {
		return time.Time{}, err
	}
	return grid[i], nil
}

func nearestIndex(ts time.Time, grid []time.Time) (int, error) {
	if len(grid) == 0 {
		return -1, ErrEmptyGrid
	}
	best, bestSec, bestNsec := 0, int64(0), int64(0)
	for i, g := range grid {
		sec, nsec := distance(ts, g)
		if i == 0 || sec < bestSec || (sec == bestSec && nsec < bestNsec) {
			best, bestSec, bestNsec = i, sec, nsec
		}
	}
	return best, nil
}

// distance is |a-b| as whole seconds plus nanoseconds, exact for any span
func distance(a, b time.Time) (sec, nsec int64) {
	if a.Before(b) {
		a, b = b, a
	}
	sec = a.Unix() - b.Unix()
	nsec = int64(a.Nanosecond() - b.Nanosecond())
	if nsec < 0 {
		sec--
		nsec += int64(time.Second)
	}
	return sec, nsec
}
