package retrypolicy

import (
	"context"
	"errors"
	"testing"
	"time"
)

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string  { return e.msg }
func (e *statusError) StatusCode() int { return e.code }

func TestDoRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	opts := DefaultOptions()
	opts.InitialDelay = time.Millisecond
	opts.MaxDelay = 5 * time.Millisecond

	err := Do(context.Background(), opts, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &statusError{code: 429, msg: "rate limited"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	opts := DefaultOptions()
	opts.InitialDelay = time.Millisecond

	wantErr := errors.New("bad request")
	err := Do(context.Background(), opts, func(ctx context.Context) error {
		attempts++
		return wantErr
	})
	if attempts != 1 {
		t.Fatalf("non-retryable error should stop after 1 attempt, got %d", attempts)
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped wantErr, got %v", err)
	}
}

func TestDoExhaustsMaxAttempts(t *testing.T) {
	attempts := 0
	opts := DefaultOptions()
	opts.MaxAttempts = 3
	opts.InitialDelay = time.Millisecond
	opts.MaxDelay = 2 * time.Millisecond

	persistentErr := &statusError{code: 500, msg: "server error"}
	err := Do(context.Background(), opts, func(ctx context.Context) error {
		attempts++
		return persistentErr
	})
	if attempts != 3 {
		t.Fatalf("expected exactly MaxAttempts=3 attempts, got %d", attempts)
	}
	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}
}

func TestDoInvokesPersistent429Fallback(t *testing.T) {
	attempts := 0
	fallbackCalled := false
	opts := DefaultOptions()
	opts.MaxAttempts = 6
	opts.InitialDelay = time.Millisecond
	opts.MaxDelay = 2 * time.Millisecond
	opts.OnPersistent429 = func(ctx context.Context) error {
		fallbackCalled = true
		return nil
	}

	err := Do(context.Background(), opts, func(ctx context.Context) error {
		attempts++
		if attempts < 4 {
			return &statusError{code: 429, msg: "rate limited"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if !fallbackCalled {
		t.Fatal("expected OnPersistent429 to fire after 3 consecutive 429s")
	}
}

type retryAfterErr struct {
	statusError
	after time.Duration
}

func (e *retryAfterErr) RetryAfter() (time.Duration, bool) { return e.after, true }

func TestDoHonorsRetryAfter(t *testing.T) {
	attempts := 0
	opts := DefaultOptions()
	opts.InitialDelay = 50 * time.Millisecond

	start := time.Now()
	err := Do(context.Background(), opts, func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return &retryAfterErr{statusError: statusError{code: 429, msg: "rate limited"}, after: time.Millisecond}
		}
		return nil
	})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if elapsed > 40*time.Millisecond {
		t.Fatalf("expected Retry-After's short delay to override the much larger InitialDelay, took %s", elapsed)
	}
}
