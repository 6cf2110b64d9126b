package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable means a backend could not be reached. Readers treat it as
// a miss and publish without caching.
var ErrUnavailable = errors.New("cache unavailable")

// retryable marks an error as transient for Retry.
type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// Retry runs fn up to attempts times while it fails with a Retryable
// error, doubling delay between tries. Other errors return immediately.
// When attempts run out the underlying cause is returned without the
// retryable mark, so callers up the stack do not retry again.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	for i := 1; ; i++ {
		err := fn()
		var r retryable
		if err == nil || !errors.As(err, &r) {
			return err
		}
		if i == attempts {
			return r.err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
