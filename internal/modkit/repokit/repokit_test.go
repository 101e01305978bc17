package repokit

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	kit "reviewlens/internal/platform/testkit"
)

type fakeTag struct{}

func (fakeTag) String() string      { return "SET" }
func (fakeTag) RowsAffected() int64 { return 0 }

// fakeTx records statements; Tx hands itself to fn
type fakeTx struct {
	execs   []string
	execErr error
	txCalls int
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.execs = append(f.execs, sql)
	return fakeTag{}, f.execErr
}
func (f *fakeTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) Row        { return nil }
func (f *fakeTx) Tx(_ context.Context, fn func(Queryer) error) error {
	f.txCalls++
	return fn(f)
}

func TestWithBeginHooks_RunsHooksFirst(t *testing.T) {
	t.Parallel()

	inner := &fakeTx{}
	tx := WithBeginHooks(inner, StatementTimeout(1500*time.Millisecond))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "UPDATE user_chart_prefs SET colors = $1")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"SET LOCAL statement_timeout = 1500", "UPDATE user_chart_prefs SET colors = $1"}
	if !reflect.DeepEqual(inner.execs, want) {
		t.Fatalf("execs = %v", inner.execs)
	}
	if inner.txCalls != 1 {
		t.Fatalf("tx calls = %d", inner.txCalls)
	}
}

func TestWithBeginHooks_HookErrorStops(t *testing.T) {
	t.Parallel()

	inner := &fakeTx{execErr: errors.New("read only")}
	called := false
	err := WithBeginHooks(inner, StatementTimeout(time.Second)).Tx(context.Background(), func(Queryer) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("err = %v, called = %v", err, called)
	}
}

func TestMustBind(t *testing.T) {
	t.Parallel()

	b := BindFunc[string](func(q Queryer) string { return "bound" })
	if got := MustBind[string](b, &fakeTx{}); got != "bound" {
		t.Fatalf("got %q", got)
	}
	kit.MustPanic(t, func() { MustBind[string](b, nil) })
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestPing(t *testing.T) {
	t.Parallel()

	hasDeadline := false
	ok := pingFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	if err := Ping(context.Background(), "pg", ok); err != nil || !hasDeadline {
		t.Fatalf("err = %v, deadline = %v", err, hasDeadline)
	}

	err := Ping(context.Background(), "ch", pingFunc(func(context.Context) error { return errors.New("refused") }))
	if err == nil {
		t.Fatal("expected error")
	}
	kit.MustContain(t, err.Error(), "ch ping failed: refused")

	if err := Ping(context.Background(), "pg", nil); err == nil {
		t.Fatal("nil pinger should fail")
	}
	kit.MustPanic(t, func() { MustPing(context.Background(), "pg", nil) })
}
