package task

import (
	"github.com/marksmeltzer/async/routine"
	"github.com/marksmeltzer/async/sched"
)

// Awaiter is the suspension-protocol view of a Task. It is a stateless
// snapshot: it has no identity beyond the Task it wraps.
//
// A driver is expected to check Done, read the result directly when it is
// already available, and otherwise register exactly one continuation. At
// most one registration per underlying Source-backed Task is supported.
type Awaiter[T any] struct {
	t Task[T]
}

// Awaiter returns the suspension-protocol view of the Task.
func (t Task[T]) Awaiter() Awaiter[T] {
	return Awaiter[T]{t: t}
}

// Done forwards to Task.Done.
func (a Awaiter[T]) Done() bool {
	return a.t.Done()
}

// Result forwards to Task.Result. A propagated failure is returned exactly
// as captured; the awaiter never wraps it.
func (a Awaiter[T]) Result() (T, error) {
	return a.t.Result()
}

// OnComplete registers fn to run exactly once, strictly after the operation
// completes and never synchronously inside this call. Delivery is
// panic-isolated: a panic in fn is recovered and does not reach the
// goroutine that completed the operation.
func (a Awaiter[T]) OnComplete(fn func()) {
	a.t.register(fn, true)
}

// UnsafeOnComplete is OnComplete without panic isolation, for trusted
// drivers that install their own recovery. A panic in fn escapes into the
// delivering goroutine.
func (a Awaiter[T]) UnsafeOnComplete(fn func()) {
	a.t.register(fn, false)
}

func (t Task[T]) register(fn func(), guarded bool) {
	deliver := fn
	if guarded {
		deliver = func() {
			routine.RunSafe(fn)
		}
	}
	switch t.kind {
	case kindSource:
		var sf SourceFlags
		if t.flags&flagNoScheduler == 0 {
			sf |= UseScheduler
		}
		if guarded {
			sf |= GuardPanics
		}
		t.source.OnComplete(fn, sf)
	case kindHandle:
		h := t.handle
		if t.flags&flagNoScheduler != 0 {
			// Subscribe never runs the callback inside this frame;
			// already-completed operations still go through the scheduler.
			h.Subscribe(func(T, error) {
				deliver()
			})
			return
		}
		h.SubscribeScheduled(func(T, error) {
			deliver()
		})
	default:
		sched.Default().Submit(deliver)
	}
}

// Configured is a Task whose scheduling-context choice was fixed with
// Task.Configure. Awaiters produced from it honor that choice even across
// promotion bridging.
type Configured[T any] struct {
	t Task[T]
}

// Awaiter returns the suspension-protocol view of the configured Task.
func (c Configured[T]) Awaiter() Awaiter[T] {
	return Awaiter[T]{t: c.t}
}

// Task returns the underlying Task carrying the configured behavior.
func (c Configured[T]) Task() Task[T] {
	return c.t
}
