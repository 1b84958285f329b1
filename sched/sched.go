// Package sched provides the scheduling context on which asynchronous
// continuations are delivered.
//
// The process has a single default Executor, which runs every submission on
// its own goroutine. It can be replaced with Set, for example to reuse
// goroutines or to bound concurrency:
//
//	sched.Set(sched.NewPoolExecutor(100))
//
// Replacing the default executor is rarely necessary. For RPC-like or
// otherwise blocking submissions, a bounded executor can cause queueing and
// latency degradation; replace it only after measuring the workload.
package sched

import "sync/atomic"

// Executor runs submitted functions at some later point, on some goroutine.
type Executor interface {
	Submit(func())
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(func())

func (e ExecutorFunc) Submit(f func()) {
	e(f)
}

type holder struct {
	e Executor
}

var defaultExecutor atomic.Pointer[holder]

// Default returns the process-wide executor.
func Default() Executor {
	if h := defaultExecutor.Load(); h != nil {
		return h.e
	}
	return GoExecutor{}
}

// Set replaces the process-wide executor. It panics if e is nil.
func Set(e Executor) {
	if e == nil {
		panic("sched: executor is nil")
	}
	defaultExecutor.Store(&holder{e: e})
}
