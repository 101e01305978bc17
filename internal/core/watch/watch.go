// Package watch provides an observable value holder
//
// A Value keeps the latest state and notifies subscribers on Set, either via
// callbacks or via a per subscriber channel that always holds the newest value.
package watch

import (
	"context"
	"sync"
)

// Value is a concurrency safe observable value
// callbacks run in version order and must not call Set or Update
type Value[T any] struct {
	// notify serialises writers so callbacks see versions in order
	notify sync.Mutex
	mu     sync.RWMutex
	v      T
	ver    uint64
	nextID int
	subs   map[int]func(T)
	equal  func(a, b T) bool
}

// Option configures a Value
type Option[T any] func(*Value[T])

// WithEqual skips notifications when the new value equals the current one
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(v *Value[T]) { v.equal = eq }
}

// New returns a Value holding initial
func New[T any](initial T, opts ...Option[T]) *Value[T] {
	v := &Value[T]{v: initial, subs: map[int]func(T){}}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Version increments on every accepted Set
func (v *Value[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ver
}

// Set stores x and notifies subscribers
// returns false when an equality func reports no change
func (v *Value[T]) Set(x T) bool {
	return v.Update(func(T) T { return x })
}

// Update applies fn to the current value and stores the result in one step
func (v *Value[T]) Update(fn func(T) T) bool {
	v.notify.Lock()
	defer v.notify.Unlock()

	v.mu.Lock()
	x := fn(v.v)
	if v.equal != nil && v.equal(v.v, x) {
		v.mu.Unlock()
		return false
	}
	v.v = x
	v.ver++
	fns := make([]func(T), 0, len(v.subs))
	for _, f := range v.subs {
		fns = append(fns, f)
	}
	v.mu.Unlock()

	for _, f := range fns {
		f(x)
	}
	return true
}

// Subscribe registers fn for future changes and calls it once with the current value
// the returned func unsubscribes
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.notify.Lock()
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	cur := v.v
	v.mu.Unlock()
	fn(cur)
	v.notify.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// Updates streams values until ctx is done
// the channel holds at most one pending value and slow readers only see the newest
func (v *Value[T]) Updates(ctx context.Context) <-chan T {
	out := make(chan T, 1)
	var mu sync.Mutex
	closed := false

	push := func(x T) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case <-out:
		default:
		}
		out <- x
	}
	cancel := v.Subscribe(push)

	go func() {
		<-ctx.Done()
		cancel()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()
	return out
}
