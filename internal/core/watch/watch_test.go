package watch

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestValue_GetSet(t *testing.T) {
	t.Parallel()

	v := New(1)
	if v.Get() != 1 {
		t.Fatalf("Get = %d, want 1", v.Get())
	}
	if !v.Set(2) || v.Get() != 2 || v.Version() != 1 {
		t.Fatalf("after Set: value %d version %d", v.Get(), v.Version())
	}
	v.Update(func(x int) int { return x * 10 })
	if v.Get() != 20 {
		t.Fatalf("Update: got %d, want 20", v.Get())
	}
}

func TestValue_SubscribeReceivesCurrentAndChanges(t *testing.T) {
	t.Parallel()

	v := New("a")
	var mu sync.Mutex
	var seen []string
	cancel := v.Subscribe(func(s string) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})
	v.Set("b")
	cancel()
	cancel() // idempotent
	v.Set("c")

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("seen = %v, want [a b]", seen)
	}
}

func TestValue_WithEqualSkipsNoop(t *testing.T) {
	t.Parallel()

	v := New(5, WithEqual(func(a, b int) bool { return a == b }))
	calls := 0
	v.Subscribe(func(int) { calls++ })
	if v.Set(5) {
		t.Fatal("Set of equal value should report no change")
	}
	v.Set(6)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (initial + one change)", calls)
	}
}

func TestValue_UpdatesKeepsNewest(t *testing.T) {
	t.Parallel()

	v := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	ch := v.Updates(ctx)

	for i := 1; i <= 5; i++ {
		v.Set(i)
	}
	select {
	case got := <-ch:
		if got != 5 {
			t.Fatalf("got %d, want newest 5", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}

	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestValue_ConcurrentUpdatesAreNotLost(t *testing.T) {
	t.Parallel()

	const n = 1000
	v := New(0)
	var (
		mu   sync.Mutex
		last = -1
		out  = 0
	)
	cancel := v.Subscribe(func(x int) {
		mu.Lock()
		if x <= last {
			out++
		}
		last = x
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(x int) int {
				runtime.Gosched()
				return x + 1
			})
		}()
	}
	wg.Wait()

	if v.Get() != n || v.Version() != n {
		t.Fatalf("Get = %d Version = %d, want %d", v.Get(), v.Version(), n)
	}
	mu.Lock()
	defer mu.Unlock()
	if out != 0 || last != n {
		t.Fatalf("subscriber saw %d out of order values, last %d", out, last)
	}
}

func TestValue_UpdatesEndsOnNewestAfterRacingSets(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v := New(0)
	ch := v.Updates(ctx)

	var wg sync.WaitGroup
	for i := 1; i <= 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Set(i)
		}()
	}
	wg.Wait()

	want := v.Get()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("pending update = %d, Get = %d", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("no pending update")
	}
}
