package testkit

import "testing"

// serial is a one slot semaphore shared by every Serial caller
var serial = make(chan struct{}, 1)

// Swap points *target at v until tb finishes and returns what was there
func Swap[T any](tb testing.TB, target *T, v T) (prev T) {
	tb.Helper()
	prev, *target = *target, v
	tb.Cleanup(func() { *target = prev })
	return prev
}

// Serial blocks until no other Serial caller is running, then holds the slot until tb ends
func Serial(tb testing.TB) {
	tb.Helper()
	serial <- struct{}{}
	tb.Cleanup(func() { <-serial })
}
