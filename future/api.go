package future

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/marksmeltzer/async/routine"
	"github.com/marksmeltzer/async/sched"
)

var (
	ErrPanic   = errors.New("async panic")
	ErrTimeout = errors.New("future timeout")
)

// Async runs f on the default scheduler and returns a Future for its result.
func Async[T any](f func() (T, error)) *Future[T] {
	return Submit(sched.Default(), f)
}

// CtxAsync runs f with ctx on the default scheduler and returns a Future for
// its result.
func CtxAsync[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	return CtxSubmit(ctx, sched.Default(), f)
}

// Submit runs f on the given executor and returns a Future for its result.
// A panic in f completes the Future with an ErrPanic fault carrying the
// recovered stack.
func Submit[T any](e sched.Executor, f func() (T, error)) *Future[T] {
	s := newState[T]()
	e.Submit(func() {
		var val T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrPanic, routine.NewRecovered(2, r).AsError())
			}
			s.set(val, err)
		}()
		val, err = f()
	})
	return &Future[T]{state: s}
}

// CtxSubmit runs f with ctx on the given executor and returns a Future for
// its result.
func CtxSubmit[T any](ctx context.Context, e sched.Executor, f func(ctx context.Context) (T, error)) *Future[T] {
	s := newState[T]()
	e.Submit(func() {
		var val T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrPanic, routine.NewRecovered(2, r).AsError())
			}
			s.set(val, err)
		}()
		val, err = f(ctx)
	})
	return &Future[T]{state: s}
}

// Done returns an already-completed Future holding val.
func Done[T any](val T) *Future[T] {
	return Done2(val, nil)
}

// Done2 returns an already-completed Future holding val and err.
func Done2[T any](val T, err error) *Future[T] {
	s := newState[T]()
	s.set(val, err)
	return &Future[T]{state: s}
}

// Canceled returns an already-canceled Future.
func Canceled[T any]() *Future[T] {
	var zero T
	return Done2(zero, context.Canceled)
}

// Await returns the value and error of the Future, blocking until it is done.
func Await[T any](f *Future[T]) (T, error) {
	return f.Get()
}

// Then returns a Future for cb applied to f's outcome once f is done.
func Then[T any, R any](f *Future[T], cb func(T, error) (R, error)) *Future[R] {
	s := newState[R]()
	f.state.subscribe(func(val T, err error) {
		rval, rerr := cb(val, err)
		s.set(rval, rerr)
	}, false)
	return &Future[R]{state: s}
}

// AllOf returns a Future that completes with all results once every input
// Future is done, or with the first error observed.
func AllOf[T any](fs ...*Future[T]) *Future[[]T] {
	if len(fs) == 0 {
		return Done[[]T](nil)
	}

	var done uint32
	s := newState[[]T]()
	c := int32(len(fs))
	results := make([]T, len(fs))
	for i, f := range fs {
		i := i
		f.state.subscribe(func(val T, err error) {
			if err != nil {
				if atomic.CompareAndSwapUint32(&done, 0, 1) {
					s.set(nil, err)
				}
			} else {
				results[i] = val
				if atomic.AddInt32(&c, -1) == 0 {
					s.set(results, nil)
				}
			}
		}, false)
	}
	return &Future[[]T]{state: s}
}

// Timeout returns a Future that mirrors f, or completes with ErrTimeout if f
// is not done within d.
func Timeout[T any](f *Future[T], d time.Duration) *Future[T] {
	return Until(f, time.Now().Add(d))
}

// Until returns a Future that mirrors f, or completes with ErrTimeout if f
// is not done by the deadline.
func Until[T any](f *Future[T], deadline time.Time) *Future[T] {
	s := newState[T]()
	timer := time.AfterFunc(time.Until(deadline), func() {
		var zero T
		s.set(zero, ErrTimeout)
	})
	f.state.subscribe(func(val T, err error) {
		timer.Stop()
		s.set(val, err)
	}, false)
	return &Future[T]{state: s}
}
