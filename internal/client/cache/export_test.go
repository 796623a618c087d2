package cache

import (
	"sync/atomic"
	"testing"
)

// lineUp makes s signal once n callers have attached to the in-flight call.
// Callers beyond n are ignored.
func lineUp(t *testing.T, s *Store, n int) <-chan struct{} {
	t.Helper()
	var count int32
	ready := make(chan struct{})
	joinedHook = func(got *Store, _ string) {
		if got != s {
			return
		}
		if atomic.AddInt32(&count, 1) == int32(n) {
			close(ready)
		}
	}
	t.Cleanup(func() { joinedHook = nil })
	return ready
}
