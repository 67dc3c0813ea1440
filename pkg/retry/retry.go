// Package retry provides the bounded fixed-backoff wrapper used around read
// operations. Writes are never retried: a failed save must surface to the
// caller instead of risking a duplicate submission.
package retry

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultAttempts = 3
	DefaultBackoff  = 500 * time.Millisecond
)

// Do runs fn up to attempts times, sleeping backoff between tries. It returns
// nil on the first success and the last error otherwise. Context cancellation
// stops further attempts.
func Do(ctx context.Context, attempts int, backoff time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		var final *unrecoverableError
		if errors.As(err, &final) {
			return final.err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}

// Reads runs fn with the default read policy
func Reads(ctx context.Context, fn func(ctx context.Context) error) error {
	return Do(ctx, DefaultAttempts, DefaultBackoff, fn)
}

type unrecoverableError struct {
	err error
}

func (e *unrecoverableError) Error() string { return e.err.Error() }
func (e *unrecoverableError) Unwrap() error { return e.err }

// Unrecoverable marks err as a definite outcome rather than a transient
// failure. Do returns the original error immediately without further
// attempts or backoff sleeps.
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return &unrecoverableError{err: err}
}
