package task

// SourceFlags control how a Source delivers a registered continuation.
type SourceFlags uint8

const (
	// UseScheduler submits the continuation to sched.Default() instead of
	// running it on the goroutine that completes the operation.
	UseScheduler SourceFlags = 1 << iota
	// GuardPanics isolates the continuation with routine.RunSafe.
	GuardPanics
)

// Source is the capability a custom in-flight operation implements to back
// a Task directly, without a heap-allocated shared handle. SourceCore is a
// ready-made implementation for producers.
//
// The contract is single-shot: at most one continuation is registered, and
// Result is read at most once, after completion was observed. Consumers
// needing more promote the Task first.
//
// Implementations should be pointer-shaped; Tasks compare Sources by
// reference identity, and a value-shaped Source has none.
type Source[T any] interface {
	// Done reports whether the operation has completed. It must not block.
	Done() bool
	// Succeeded reports whether the operation has completed without error.
	// It must not block.
	Succeeded() bool
	// Result returns the value or the failure of the operation. It is only
	// called after completion was observed.
	Result() (T, error)
	// OnComplete registers fn to run exactly once, strictly after the
	// operation completes, honoring flags. fn must never be invoked
	// synchronously inside the OnComplete call, even when the operation
	// has already completed.
	OnComplete(fn func(), flags SourceFlags)
}
