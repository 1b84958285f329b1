// Package retry provides a flexible retry mechanism with pluggable backoff
// strategies.
//
// Basic usage:
//
//	result, err := retry.Do(ctx, func() (string, error) {
//	    return apiCall()
//	})
//
// With options:
//
//	result, err := retry.Do(ctx, f,
//	    retry.WithMaxAttempts(5),
//	    retry.WithRetryStrategy(retry.ExponentialBackoff(100*time.Millisecond, time.Second)),
//	    retry.WithShouldRetryFunc(func(err error) bool {
//	        return isTransientError(err)
//	    }),
//	)
//
// Async runs the same loop off the calling goroutine and hands back a
// *future.Future for the eventual outcome.
//
// Backoff strategies:
//   - FixedBackoff: constant delay between attempts
//   - LinearBackoff: delay grows linearly with the attempt number
//   - ExponentialBackoff: delay doubles per attempt, capped at a maximum
package retry
