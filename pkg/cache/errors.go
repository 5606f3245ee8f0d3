package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a remote backend that could not be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// connectAttempts bounds RetryWithBackoff.
const connectAttempts = 3

// initialBackoff is the first delay; it doubles after every attempt.
var initialBackoff = 500 * time.Millisecond

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or connectAttempts calls have failed. It is used when opening
// remote backends, where the server may still be starting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := initialBackoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == connectAttempts {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
