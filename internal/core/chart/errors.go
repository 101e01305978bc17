package chart

import (
	"errors"
	"fmt"
	"time"
)

// EmptyGridError is returned when a bucket grid has no entries
type EmptyGridError struct{}

func (EmptyGridError) Error() string { return "chart: empty bucket grid" }

// ErrEmptyGrid is the comparable EmptyGridError value for errors.Is
var ErrEmptyGrid error = EmptyGridError{}

// ErrInvalidMode is returned for malformed bucket modes
var ErrInvalidMode = errors.New("chart: invalid bucket mode")

// ErrGridTooLarge guards against runaway calendar grids
var ErrGridTooLarge = errors.New("chart: bucket grid too large")

// DateParseError reports an input date string that could not be parsed
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("chart: cannot parse date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// layouts accepted from the backend, most specific first
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a backend date string. Dates without a zone are read as UTC
func ParseDate(s string) (time.Time, error) {
	var last error
	for _, l := range layouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, nil
		}
		last = err
	}
	return time.Time{}, &DateParseError{Value: s, Err: last}
}
