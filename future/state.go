package future

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/marksmeltzer/async/sched"
)

const (
	stateFree uint32 = iota
	stateDoing
	stateDone
)

type state[T any] struct {
	noCopy noCopy

	state atomic.Uint32
	done  chan struct{}
	once  sync.Once

	val T
	err error

	stack unsafe.Pointer // *callback[T]
}

func newState[T any]() *state[T] {
	return &state[T]{}
}

func (s *state[T]) lazyInit() {
	s.once.Do(func() {
		s.done = make(chan struct{})
	})
}

func (s *state[T]) set(val T, err error) bool {
	if !s.state.CompareAndSwap(stateFree, stateDoing) {
		return false
	}
	s.val = val
	s.err = err

	s.state.CompareAndSwap(stateDoing, stateDone)
	s.lazyInit()
	close(s.done)

	// execute all callbacks
	for {
		head := (*callback[T])(atomic.LoadPointer(&s.stack))
		if head == nil {
			break
		}
		// stack = head.next
		if atomic.CompareAndSwapPointer(&s.stack, unsafe.Pointer(head), unsafe.Pointer(head.next)) {
			head.execOnce(val, err)
			head.next = nil
		}
	}

	return true
}

func (s *state[T]) get() (T, error) {
	if s.isDone() {
		return s.val, s.err
	}
	s.lazyInit()
	<-s.done
	return s.val, s.err
}

// subscribe registers cb to run exactly once after completion. cb is never
// invoked within the subscriber's frame: callbacks against an already-done
// state are dispatched through the scheduler. With scheduled set, cb goes
// through the scheduler in every case, with a single submission.
func (s *state[T]) subscribe(cb func(T, error), scheduled bool) {
	newCb := &callback[T]{f: cb, scheduled: scheduled}
	// push newCb onto the stack
	for {
		oldCb := (*callback[T])(atomic.LoadPointer(&s.stack))

		if s.isDone() {
			sched.Default().Submit(func() {
				cb(s.val, s.err)
			})
			return
		}

		newCb.next = oldCb
		if atomic.CompareAndSwapPointer(&s.stack, unsafe.Pointer(oldCb), unsafe.Pointer(newCb)) {
			// stack may be nil, the execution logic in set will skip, so double check here
			if s.isDone() {
				if scheduled {
					// execOnce submits to the scheduler itself; wrapping
					// it in another submission would deliver in two hops.
					newCb.execOnce(s.val, s.err)
				} else {
					sched.Default().Submit(func() {
						newCb.execOnce(s.val, s.err)
					})
				}
			}
			return
		}
	}
}

func (s *state[T]) isFree() bool {
	return s.state.Load() == stateFree
}

func (s *state[T]) isDone() bool {
	return s.state.Load() == stateDone
}

type callback[T any] struct {
	once sync.Once

	f         func(T, error)
	scheduled bool // deliver through sched.Default()
	next      *callback[T]
}

func (cb *callback[T]) execOnce(val T, err error) {
	cb.once.Do(func() {
		if cb.scheduled {
			sched.Default().Submit(func() {
				cb.f(val, err)
			})
			return
		}
		cb.f(val, err)
	})
}

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
