package task

import (
	"reflect"
	"sync"

	"github.com/marksmeltzer/async/future"
)

type kind uint8

const (
	kindResult kind = iota // completed successfully, result stored inline
	kindHandle             // backed by *future.Future[T]
	kindSource             // backed by Source[T]
)

type flags uint8

const (
	// flagNoScheduler keeps continuations on the goroutine that completes
	// the operation instead of re-submitting them to sched.Default().
	flagNoScheduler flags = 1 << iota
)

// Void is the unit result for operations that produce no value.
type Void struct{}

// Task is a value-typed handle for an asynchronous operation. The zero Task
// is a completed Task holding the zero result.
//
// A Task is immutable after construction and safe to read from multiple
// goroutines; the single-shot restriction on Source-backed Tasks is
// documented in the package comment.
type Task[T any] struct {
	kind   kind
	flags  flags
	handle *future.Future[T]
	source Source[T]
	result T
}

// From returns a completed Task holding v.
func From[T any](v T) Task[T] {
	return Task[T]{result: v}
}

// FromError returns a faulted Task. It panics if err is nil.
func FromError[T any](err error) Task[T] {
	if err == nil {
		panic("task: nil error")
	}
	var zero T
	return FromFuture(future.Done2(zero, err))
}

// FromFuture returns a Task backed by the shared handle h.
// It panics if h is nil.
func FromFuture[T any](h *future.Future[T]) Task[T] {
	if h == nil {
		panic("task: nil future")
	}
	return Task[T]{kind: kindHandle, handle: h}
}

// FromSource returns a Task backed by s. It panics if s is nil.
func FromSource[T any](s Source[T]) Task[T] {
	if s == nil {
		panic("task: nil source")
	}
	return Task[T]{kind: kindSource, source: s}
}

// Completed returns a completed unit Task.
func Completed() Task[Void] {
	return Task[Void]{}
}

// Done reports whether the operation has completed.
func (t Task[T]) Done() bool {
	switch t.kind {
	case kindHandle:
		return t.handle.IsDone()
	case kindSource:
		return t.source.Done()
	default:
		return true
	}
}

// Succeeded reports whether the operation has completed without a fault or
// cancellation.
func (t Task[T]) Succeeded() bool {
	switch t.kind {
	case kindHandle:
		return t.handle.Succeeded()
	case kindSource:
		return t.source.Succeeded()
	default:
		return true
	}
}

// Faulted reports whether the operation has completed with an error other
// than cancellation. A Source has no canceled state, so any unsuccessful
// Source completion counts as a fault.
func (t Task[T]) Faulted() bool {
	switch t.kind {
	case kindHandle:
		return t.handle.Faulted()
	case kindSource:
		return t.source.Done() && !t.source.Succeeded()
	default:
		return false
	}
}

// Canceled reports whether the operation has completed in a canceled state.
// Only future-backed Tasks can be canceled.
func (t Task[T]) Canceled() bool {
	if t.kind == kindHandle {
		return t.handle.Canceled()
	}
	return false
}

// Result returns the value or the failure of the operation. The error is
// returned exactly as it was captured, so its stack attribution stays with
// the failure site.
//
// Future-backed Tasks block until completion. Source-backed Tasks must only
// be read after completion was observed; reading early is caller error.
func (t Task[T]) Result() (T, error) {
	switch t.kind {
	case kindHandle:
		return t.handle.Get()
	case kindSource:
		return t.source.Result()
	default:
		return t.result, nil
	}
}

// Wait blocks like Result and discards the value.
func (t Task[T]) Wait() error {
	_, err := t.Result()
	return err
}

var voidFuture = sync.OnceValue(func() *future.Future[Void] {
	return future.Done(Void{})
})

// Future promotes the Task to a shared, multi-consumer completion handle.
//
// It is identity-preserving on future-backed Tasks: the same handle comes
// back every time, with no allocation. Completed-inline unit Tasks share a
// process-wide completed future. A pending Source-backed Task is bridged by
// registering the sole continuation on the Source, so promotion consumes
// the Task's single shot.
func (t Task[T]) Future() *future.Future[T] {
	switch t.kind {
	case kindHandle:
		return t.handle
	case kindSource:
		src := t.source
		if src.Done() {
			return future.Done2(src.Result())
		}
		p := future.NewPromise[T]()
		// The bridge registers with no delivery flags: the eventual
		// consumers of the promoted future choose their own scheduling,
		// and marshalling here would marshal twice.
		src.OnComplete(func() {
			p.Set(src.Result())
		}, 0)
		return p.Future()
	default:
		if _, ok := any(t.result).(Void); ok {
			return any(voidFuture()).(*future.Future[T])
		}
		return future.Done(t.result)
	}
}

// Configure fixes the scheduling-context behavior of continuations
// registered through the returned view. Configure(false) keeps them on the
// goroutine that completes the operation. The receiver is not modified.
func (t Task[T]) Configure(useScheduler bool) Configured[T] {
	if useScheduler {
		t.flags &^= flagNoScheduler
	} else {
		t.flags |= flagNoScheduler
	}
	return Configured[T]{t: t}
}

// Equal reports whether two Tasks are backed by the identical payload.
// Payloads are compared by reference identity; two completed-inline Tasks
// compare by their results. Behavior flags do not take part.
func Equal[T comparable](a, b Task[T]) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindHandle:
		return a.handle == b.handle
	case kindSource:
		return sameSource(a.source, b.source)
	default:
		return a.result == b.result
	}
}

// sameSource compares Sources by reference identity. A value-shaped Source
// has no identity to compare, so it is never equal to anything, and the
// comparison cannot panic on uncomparable dynamic types.
func sameSource[T any](a, b Source[T]) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() != reflect.Pointer || bv.Kind() != reflect.Pointer {
		return false
	}
	return av.Pointer() == bv.Pointer()
}
