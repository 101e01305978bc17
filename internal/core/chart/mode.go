package chart

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects how a grid is laid out
type Kind uint8

const (
	// KindCalendar snaps buckets to interval boundaries
	KindCalendar Kind = iota + 1
	// KindFixed spaces Count buckets evenly between min and max
	KindFixed
)

// Interval is a calendar bucket width
type Interval string

// Supported calendar intervals
const (
	Day   Interval = "day"
	Week  Interval = "week"
	Month Interval = "month"
	Year  Interval = "year"
)

// Mode describes the bucket grid to build
// Location defaults to UTC. Weeks start on Sunday
type Mode struct {
	Kind     Kind
	Interval Interval
	Count    int
	Location *time.Location
}

// Calendar returns a calendar aligned mode
func Calendar(iv Interval) Mode { return Mode{Kind: KindCalendar, Interval: iv} }

// Fixed returns a mode with count evenly spaced buckets
func Fixed(count int) Mode { return Mode{Kind: KindFixed, Count: count} }

// In returns a copy of m evaluated in loc
func (m Mode) In(loc *time.Location) Mode {
	m.Location = loc
	return m
}

// ParseInterval accepts day, week, month or year in any case
func ParseInterval(s string) (Interval, error) {
	switch iv := Interval(strings.ToLower(strings.TrimSpace(s))); iv {
	case Day, Week, Month, Year:
		return iv, nil
	default:
		return "", fmt.Errorf("%w: unknown interval %q", ErrInvalidMode, s)
	}
}

// Validate reports whether m can produce a grid
func (m Mode) Validate() error {
	switch m.Kind {
	case KindCalendar:
		_, err := ParseInterval(string(m.Interval))
		return err
	case KindFixed:
		if m.Count < 2 {
			return fmt.Errorf("%w: fixed count must be at least 2, got %d", ErrInvalidMode, m.Count)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidMode, m.Kind)
	}
}

func (m Mode) loc() *time.Location {
	if m.Location == nil {
		return time.UTC
	}
	return m.Location
}

func (m Mode) String() string {
	if m.Kind == KindFixed {
		return fmt.Sprintf("fixed(%d)", m.Count)
	}
	return "calendar(" + string(m.Interval) + ")"
}
