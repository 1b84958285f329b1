package routine

import (
	"time"
)

// RunSafe runs fn synchronously, recovering from any panic.
//
// If fn panics, each cleanup function is called in order with the panic
// value. The panic does not propagate; the caller continues normally.
func RunSafe(fn func(), cleanup ...func(r interface{})) {
	defer Recover(cleanup...)

	fn()
}

// GoSafe runs fn on a new goroutine, recovering from any panic.
//
// If fn panics, each cleanup function is called in order with the panic
// value. The panic neither crashes the process nor propagates.
func GoSafe(fn func(), cleanup ...func(r interface{})) {
	go RunSafe(fn, cleanup...)
}

// RunWithTimeout runs fn on a new goroutine and waits for it to finish or
// for the timeout to elapse. It reports whether fn finished in time.
//
// On timeout fn keeps running in the background; it is not canceled.
func RunWithTimeout(fn func(), timeout time.Duration) bool {
	done := make(chan struct{})

	GoSafe(func() {
		fn()
		close(done)
	})

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
