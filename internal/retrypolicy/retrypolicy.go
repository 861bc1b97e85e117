// Package retrypolicy implements exponential backoff with jitter and
// Retry-After honoring around any operation passed to Do. Grounded on
// original_source's utils/retry_with_backoff.py, realized with
// cenkalti/backoff/v4 rather than a hand-rolled loop. The LLM provider
// adapters in internal/llmprovider and the MCP manager do not call Do.
package retrypolicy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryAfterError is implemented by provider errors that carry a
// server-specified retry delay (an HTTP Retry-After header), which takes
// priority over the computed backoff delay.
type RetryAfterError interface {
	error
	RetryAfter() (time.Duration, bool)
}

// statusCoder is implemented by SDK errors exposing an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// Options configures Do. A zero Options is invalid; use DefaultOptions.
type Options struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// ShouldRetry decides whether err is worth retrying at all. The
	// default retries 429 and 5xx.
	ShouldRetry func(error) bool

	// OnPersistent429 is invoked after 3 consecutive 429s, letting a
	// caller fall back to a cheaper model before the next attempt. A nil
	// func disables the fallback hook.
	OnPersistent429 func(ctx context.Context) error
}

// DefaultOptions matches original_source's RetryOptions defaults: 5
// attempts, 5s initial delay, 30s cap.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:  5,
		InitialDelay: 5 * time.Second,
		MaxDelay:     30 * time.Second,
		ShouldRetry:  defaultShouldRetry,
	}
}

func defaultShouldRetry(err error) bool {
	return isRetryableStatus(err)
}

func isRetryableStatus(err error) bool {
	if err == nil {
		return false
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		if code == 429 || (code >= 500 && code < 600) {
			return true
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "429") {
		return true
	}
	for i := 500; i < 600; i++ {
		if strings.Contains(msg, fmt.Sprintf("%d", i)) {
			return true
		}
	}
	return false
}

func is429(err error) bool {
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() == 429 {
		return true
	}
	return strings.Contains(err.Error(), "429")
}

// retryAfterBackOff wraps an ExponentialBackOff, letting the operation
// override the next delay with a server-specified Retry-After duration.
type retryAfterBackOff struct {
	inner       backoff.BackOff
	override    time.Duration
	hasOverride bool
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	if b.hasOverride {
		b.hasOverride = false
		return b.override
	}
	return b.inner.NextBackOff()
}

func (b *retryAfterBackOff) Reset() { b.inner.Reset() }

// Do runs fn, retrying per opts on retryable errors with exponential
// backoff plus jitter, honoring any Retry-After the error carries, and
// escalating through OnPersistent429 after 3 consecutive 429s.
func Do(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	if opts.MaxAttempts <= 0 {
		opts = DefaultOptions()
	}
	if opts.ShouldRetry == nil {
		opts.ShouldRetry = defaultShouldRetry
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = opts.InitialDelay
	eb.MaxInterval = opts.MaxDelay
	eb.Multiplier = 2
	eb.RandomizationFactor = 0.3
	eb.MaxElapsedTime = 0 // bounded by MaxAttempts, not wall-clock

	wrapped := &retryAfterBackOff{inner: eb}
	withRetries := backoff.WithMaxRetries(wrapped, uint64(opts.MaxAttempts-1))
	bo := backoff.WithContext(withRetries, ctx)

	consecutive429 := 0

	operation := func() error {
		err := fn(ctx)
		if err == nil {
			consecutive429 = 0
			return nil
		}
		if !opts.ShouldRetry(err) {
			return backoff.Permanent(err)
		}

		if is429(err) {
			consecutive429++
			if consecutive429 >= 3 && opts.OnPersistent429 != nil {
				if fbErr := opts.OnPersistent429(ctx); fbErr != nil {
					return backoff.Permanent(fmt.Errorf("retrypolicy: fallback after persistent 429s failed: %w", fbErr))
				}
				consecutive429 = 0
			}
		} else {
			consecutive429 = 0
		}

		if ra, ok := err.(RetryAfterError); ok {
			if d, present := ra.RetryAfter(); present {
				wrapped.override = d
				wrapped.hasOverride = true
			}
		}
		return err
	}

	return backoff.Retry(operation, bo)
}
