package task

import (
	"sync/atomic"

	"github.com/marksmeltzer/async/routine"
	"github.com/marksmeltzer/async/sched"
)

const (
	coreFree uint32 = iota
	coreDoing
	coreDone
)

// continuation is a registered completion callback with its delivery flags.
type continuation struct {
	fn    func()
	flags SourceFlags
}

// claimed marks a continuation slot whose delivery has been taken over by
// either the completing or the registering side.
var claimed = new(continuation)

// SourceCore is a single-shot Source implementation for producers. Complete
// it with SetResult or SetError; wrap it with Task or FromSource.
//
// Misuse is a hard error: completing twice, registering a second
// continuation, or reading the result before completion all panic.
//
// A SourceCore must not be copied after first use.
type SourceCore[T any] struct {
	state atomic.Uint32
	cont  atomic.Pointer[continuation]

	val T
	err error
}

// Task returns a Task backed by the core.
func (c *SourceCore[T]) Task() Task[T] {
	return FromSource[T](c)
}

// SetResult completes the core with v. It panics if the core is already
// completed.
func (c *SourceCore[T]) SetResult(v T) {
	c.complete(v, nil)
}

// SetError completes the core with err. It panics if err is nil or the core
// is already completed.
func (c *SourceCore[T]) SetError(err error) {
	if err == nil {
		panic("task: nil error")
	}
	var zero T
	c.complete(zero, err)
}

func (c *SourceCore[T]) complete(v T, err error) {
	if !c.state.CompareAndSwap(coreFree, coreDoing) {
		panic("task: source already completed")
	}
	c.val = v
	c.err = err
	c.state.Store(coreDone)

	if k := c.cont.Load(); k != nil && k != claimed {
		if c.cont.CompareAndSwap(k, claimed) {
			dispatch(k, false)
		}
	}
}

// Done implements Source.
func (c *SourceCore[T]) Done() bool {
	return c.state.Load() == coreDone
}

// Succeeded implements Source.
func (c *SourceCore[T]) Succeeded() bool {
	return c.state.Load() == coreDone && c.err == nil
}

// Result implements Source. It panics if the core has not completed.
func (c *SourceCore[T]) Result() (T, error) {
	if c.state.Load() != coreDone {
		panic("task: result is not ready")
	}
	return c.val, c.err
}

// OnComplete implements Source. It panics on a second registration.
func (c *SourceCore[T]) OnComplete(fn func(), flags SourceFlags) {
	k := &continuation{fn: fn, flags: flags}
	if !c.cont.CompareAndSwap(nil, k) {
		panic("task: continuation already registered")
	}
	if c.state.Load() == coreDone {
		// Completed before or during registration. Whoever wins the claim
		// delivers; delivery from here must go through the scheduler so the
		// continuation cannot run inside the registration frame.
		if c.cont.CompareAndSwap(k, claimed) {
			dispatch(k, true)
		}
	}
}

func dispatch(k *continuation, fromRegistration bool) {
	run := k.fn
	if k.flags&GuardPanics != 0 {
		fn := run
		run = func() {
			routine.RunSafe(fn)
		}
	}
	if fromRegistration || k.flags&UseScheduler != 0 {
		sched.Default().Submit(run)
		return
	}
	run()
}
