// Package routine provides panic-safe function execution.
//
//   - RunSafe/GoSafe: synchronous/asynchronous execution with automatic
//     panic recovery
//   - RunWithTimeout: execution bounded by a timeout
//   - Recover, Recovered: panic recovery with stack capture
//
// The task and future packages deliver untrusted continuations through
// RunSafe, so a panicking callback never takes down the goroutine that
// completed the operation.
package routine
