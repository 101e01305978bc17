package reviewsch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reviewlens/internal/core/chart"
)

type fakeSummarizer struct {
	sum chart.SummaryByDate
	err error
}

func (f fakeSummarizer) Summary(context.Context, int, string) (chart.SummaryByDate, error) {
	return f.sum, f.err
}

func TestLoad_ForgetsThenRecords(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{}
	src := fakeSummarizer{sum: chart.SummaryByDate{
		"2024-01-01": {1: {"positive": 3, "negative": 1}, 2: {"neutral": 0}},
		"2024-01-02": {1: {"positive": 2}},
	}}
	days, err := New(ch).Load(context.Background(), src, 7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if days != 2 {
		t.Fatalf("days = %d", days)
	}
	if len(ch.execs) != 1 || !strings.Contains(ch.execs[0], "DELETE WHERE game_id") {
		t.Fatalf("execs = %v", ch.execs)
	}
	// zero counts are not written
	if len(ch.inserted) != 3 {
		t.Fatalf("inserted %d rows", len(ch.inserted))
	}
}

func TestLoad_SourceErrorWritesNothing(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{}
	boom := errors.New("backend down")
	if _, err := New(ch).Load(context.Background(), fakeSummarizer{err: boom}, 7); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(ch.execs) != 0 || len(ch.inserted) != 0 {
		t.Fatal("nothing should be written")
	}
}

func TestLoad_BadDate(t *testing.T) {
	t.Parallel()
	src := fakeSummarizer{sum: chart.SummaryByDate{"01/02/2024": {1: {"positive": 1}}}}
	if _, err := New(&fakeCH{}).Load(context.Background(), src, 7); err == nil {
		t.Fatal("expected a date error")
	}
}
