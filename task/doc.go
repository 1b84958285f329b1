// Package task provides a value-typed handle for an operation that may have
// already completed, or may complete later.
//
// A Task[T] holds one of three payloads: an inline result (the operation
// already succeeded; no heap allocation anywhere on this path), a shared
// *future.Future[T], or a producer-supplied Source[T]. The zero Task is a
// completed Task holding the zero result.
//
// Consumers either query and read the Task directly, or suspend on it
// through an Awaiter:
//
//	aw := t.Awaiter()
//	if aw.Done() {
//		v, err := aw.Result()
//		...
//	} else {
//		aw.OnComplete(func() {
//			v, err := aw.Result()
//			...
//		})
//	}
//
// A Source-backed Task is single-shot: at most one Result/OnComplete
// sequence may be performed against it over its lifetime. A consumer that
// needs to share, cache, or re-await the result promotes it first:
//
//	f := t.Future() // safe for concurrent multi-consumer use
//
// Continuations never run synchronously inside the registration call. By
// default they are delivered through sched.Default(); Configure(false)
// keeps them on the goroutine that completes the operation.
package task
