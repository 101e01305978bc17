package testkit

import (
	"strings"
	"testing"
)

func TestAssertions(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
	MustContain(t, "positive negative neutral", "negative")
	MustNotContain(t, "positive", "negative")
	MustContain(t, strings.Repeat("x", 600)+"needle", "needle")
}
