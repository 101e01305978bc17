package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"reviewlens/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type fakeRow struct{ err error }

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	*(dest[0].(*int)) = 7
	return nil
}

// fakeRows serves vals one per row
type fakeRows struct {
	pgx.Rows
	vals   []int
	i      int
	closed int
}

func (f *fakeRows) Next() bool { f.i++; return f.i <= len(f.vals) }
func (f *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*int)) = f.vals[f.i-1]
	return nil
}
func (f *fakeRows) Err() error { return nil }
func (f *fakeRows) Close()     { f.closed++ }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "source_id"}}
}

type fakeQ struct {
	tag     pgconn.CommandTag
	execErr error
	rows    *fakeRows
	rowErr  error
}

func (f *fakeQ) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return f.tag, f.execErr
}
func (f *fakeQ) Query(context.Context, string, ...any) (pgx.Rows, error) { return f.rows, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) pgx.Row      { return fakeRow{err: f.rowErr} }

func TestTracedEmitsOncePerStatement(t *testing.T) {
	t.Parallel()
	tr := &recTracer{}
	rows := &fakeRows{vals: []int{1, 2, 3}}
	q := traced{q: &fakeQ{tag: pgconn.NewCommandTag("UPDATE 1"), rows: rows}, tracer: tr, slow: time.Hour}
	ctx := context.Background()

	if _, err := q.Exec(ctx, "UPDATE user_chart_prefs SET colors = $1", "{}"); err != nil {
		t.Fatal(err)
	}
	got, err := Many(ctx, q, func(r Row) (int, error) {
		var v int
		return v, r.Scan(&v)
	}, "SELECT source_id FROM sources")
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("Many = %v, %v", got, err)
	}
	if rows.closed != 1 {
		t.Fatalf("rows closed %d times", rows.closed)
	}
	if v, err := Scalar[int](ctx, q, "SELECT 7"); err != nil || v != 7 {
		t.Fatalf("Scalar = %d, %v", v, err)
	}

	if len(tr.events) != 3 {
		t.Fatalf("events = %d, want 3", len(tr.events))
	}
	for _, ev := range tr.events {
		if ev.Slow {
			t.Fatalf("unexpected slow event %+v", ev)
		}
	}
}

func TestTracedSlowAndErrors(t *testing.T) {
	t.Parallel()
	tr := &recTracer{}
	boom := errors.New("boom")
	q := traced{q: &fakeQ{execErr: boom, rowErr: pgx.ErrNoRows}, tracer: tr, slow: 500 * time.Millisecond}
	ctx := context.Background()

	if _, err := q.Exec(ctx, "DELETE FROM x"); !errors.Is(err, boom) {
		t.Fatalf("Exec err = %v", err)
	}
	if _, err := Scalar[int](ctx, q, "SELECT 1"); !IsNoRows(err) {
		t.Fatalf("Scalar err = %v", err)
	}
	if len(tr.events) != 2 || !errors.Is(tr.events[0].Err, boom) || !errors.Is(tr.events[1].Err, pgx.ErrNoRows) {
		t.Fatalf("events = %+v", tr.events)
	}

	q.emit(ctx, "SELECT pg_sleep(1)", nil, time.Now().Add(-time.Second), nil)
	if !tr.events[2].Slow {
		t.Fatal("statement over threshold should be slow")
	}
}

func TestExecOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	if err := ExecOne(ctx, traced{q: &fakeQ{tag: pgconn.NewCommandTag("INSERT 0 1")}}, "INSERT"); err != nil {
		t.Fatalf("ExecOne = %v", err)
	}
	if err := ExecOne(ctx, traced{q: &fakeQ{tag: pgconn.NewCommandTag("UPDATE 0")}}, "UPDATE"); err == nil {
		t.Fatal("expected rows affected error")
	}
}

func TestPgRowsColumns(t *testing.T) {
	t.Parallel()
	r := &pgRows{Rows: &fakeRows{}, done: func(error) {}}
	if cols := r.Columns(); len(cols) != 1 || cols[0] != "source_id" {
		t.Fatalf("Columns = %v", cols)
	}
	r.Close()
	r.Close()
	if r.Rows.(*fakeRows).closed != 2 {
		t.Fatal("underlying Close should always run")
	}
}
