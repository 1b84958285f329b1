// Package future provides the shared, multi-consumer completion handle of
// the Promise-Future pattern. Inspired by https://github.com/jizhuozhi/go-future
//
// A Future is safe to query, wait on, and subscribe to from any number of
// goroutines; the owning Promise is meant to be set exactly once. The
// value-typed counterpart in package task promotes into a Future when a
// result has to be shared, cached, or awaited more than once.
package future

import (
	"context"
	"errors"
)

// Promise The Promise provides a facility to store a value or an error that is later acquired asynchronously via a Future
// created by the Promise. Note that the Promise object is meant to be set only once.
//
// Each Promise is associated with a shared state, which contains some state information and a result which may be not yet evaluated,
// evaluated to a value (possibly nil) or evaluated to an error.
//
// The Promise is the "push" end of the promise-future communication channel: the operation that stores a value in the shared state
// synchronizes-with (as defined in Go's memory model) the successful return from any function that is waiting on the shared state
// (such as Future.Get).
//
// A Promise must not be copied after first use.
type Promise[T any] struct {
	state *state[T]
}

// NewPromise creates a new Promise object.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		state: newState[T](),
	}
}

// Set sets the value and error of the Promise.
// It panics if the Promise is already satisfied.
func (p *Promise[T]) Set(val T, err error) {
	if !p.state.set(val, err) {
		panic("promise already satisfied")
	}
}

// SetSafety sets the value and error of the Promise, and it will return false if already set.
func (p *Promise[T]) SetSafety(val T, err error) bool {
	return p.state.set(val, err)
}

// Cancel completes the Promise with context.Canceled, marking the Future as
// canceled. It returns false if the Promise is already satisfied.
func (p *Promise[T]) Cancel() bool {
	var zero T
	return p.state.set(zero, context.Canceled)
}

// Future returns a Future object associated with the Promise.
func (p *Promise[T]) Future() *Future[T] {
	return &Future[T]{state: p.state}
}

// Free returns true if the Promise is not set.
func (p *Promise[T]) Free() bool {
	return p.state.isFree()
}

// Future The Future provides a mechanism to access the result of asynchronous operations:
//
// 1. An asynchronous operation (Async and Promise) can provide a Future to the creator of that asynchronous operation.
//
// 2. The creator of the asynchronous operation can then use a variety of methods to query, wait for, or extract a value from the Future.
// These methods may block if the asynchronous operation has not yet provided a value.
//
// 3. When the asynchronous operation is ready to send a result to the creator, it can do so by modifying shared state (e.g. Promise.Set)
// that is linked to the creator's future.
type Future[T any] struct {
	state *state[T]
}

// Get returns the value and error of the Future, blocking until it is done.
func (f *Future[T]) Get() (T, error) {
	return f.state.get()
}

// Subscribe registers a callback to be called once the Future is done.
//
// The callback never runs synchronously inside the Subscribe call: if the
// Future is already done, the callback is dispatched through sched.Default();
// otherwise it runs on the goroutine that completes the Future.
// The callback should not contain any blocking operations.
func (f *Future[T]) Subscribe(cb func(val T, err error)) {
	f.state.subscribe(cb, false)
}

// SubscribeScheduled registers a callback like Subscribe, but always
// delivers it through sched.Default(), with exactly one submission whether
// the Future completes before or after registration.
func (f *Future[T]) SubscribeScheduled(cb func(val T, err error)) {
	f.state.subscribe(cb, true)
}

// IsDone returns true if the Future is done.
func (f *Future[T]) IsDone() bool {
	return f.state.isDone()
}

// Succeeded reports whether the Future is done without an error.
func (f *Future[T]) Succeeded() bool {
	return f.state.isDone() && f.state.err == nil
}

// Faulted reports whether the Future is done with an error other than
// cancellation.
func (f *Future[T]) Faulted() bool {
	return f.state.isDone() && f.state.err != nil && !errors.Is(f.state.err, context.Canceled)
}

// Canceled reports whether the Future is done with context.Canceled.
func (f *Future[T]) Canceled() bool {
	return f.state.isDone() && errors.Is(f.state.err, context.Canceled)
}

// Err returns the error the Future completed with. It returns nil while the
// Future is still pending; use IsDone to tell the two cases apart.
func (f *Future[T]) Err() error {
	if !f.state.isDone() {
		return nil
	}
	return f.state.err
}
