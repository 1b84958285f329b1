package routine

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Recover recovers from a panic in the deferring function and calls each
// cleanup with the panic value. It is a no-op when there is no panic.
func Recover(cleanups ...func(r interface{})) {
	if r := recover(); r != nil {
		for _, cleanup := range cleanups {
			cleanup(r)
		}
	}
}

// Recovered holds a panic value and the call stack at recovery time.
type Recovered struct {
	Value   interface{}
	Callers []uintptr
}

// NewRecovered captures the current call stack, skipping skip frames above
// the caller.
func NewRecovered(skip int, value interface{}) *Recovered {
	var callers [32]uintptr
	n := runtime.Callers(skip+1, callers[:])
	return &Recovered{
		Value:   value,
		Callers: callers[:n],
	}
}

// AsError converts the recovered panic to an error, or nil if p is nil.
func (p *Recovered) AsError() error {
	if p == nil {
		return nil
	}
	return &RecoveredError{p}
}

// RecoveredError is an error wrapping a recovered panic. Its StackTrace
// method makes the captured frames available to %+v formatting.
type RecoveredError struct {
	*Recovered
}

func (e *RecoveredError) Error() string {
	return fmt.Sprintf("panic: %v\nstacktrace:%+v", e.Value, e.StackTrace())
}

func (e *RecoveredError) StackTrace() errors.StackTrace {
	if e == nil {
		return nil
	}
	frames := make([]errors.Frame, len(e.Callers))
	for i, pc := range e.Callers {
		frames[i] = errors.Frame(pc)
	}
	return frames
}
