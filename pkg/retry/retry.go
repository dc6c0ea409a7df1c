package retry

import (
	"context"
	"time"
)

// AttemptFunc observes every failed attempt before the backoff delay is
// awaited. Useful for logging and metrics.
type AttemptFunc func(attempt int, err error)

// Retrier executes an operation with bounded exponential-backoff retry.
// The zero value is not usable; use New.
type Retrier struct {
	maxAttempts int
	backoff     BackoffStrategy
	onAttempt   AttemptFunc
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithMaxAttempts sets the total attempt budget (including the first try).
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Retrier) {
		if n >= 1 {
			r.maxAttempts = n
		}
	}
}

// WithBackoff sets the backoff strategy. Nil strategies are ignored.
func WithBackoff(b BackoffStrategy) Option {
	return func(r *Retrier) {
		if b != nil {
			r.backoff = b
		}
	}
}

// WithOnAttempt registers an observer invoked after every failed attempt,
// before the backoff delay.
func WithOnAttempt(fn AttemptFunc) Option {
	return func(r *Retrier) {
		r.onAttempt = fn
	}
}

// New creates a Retrier with a 5-attempt budget and exponential backoff
// starting at 1s, doubling each attempt.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		maxAttempts: 5,
		backoff:     DefaultBackoffStrategy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do executes op, retrying failures until the attempt budget is exhausted.
// Between attempts it waits for the backoff interval, aborting early if the
// context is cancelled. On exhaustion it returns an *ExhaustedError wrapping
// the last underlying failure. Do performs no compensating actions; partial
// successes are the caller's concern.
func (r *Retrier) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if r.onAttempt != nil {
			r.onAttempt(attempt, lastErr)
		}

		// No delay after the final attempt
		if attempt == r.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff.NextInterval(attempt)):
		}
	}

	return &ExhaustedError{Attempts: r.maxAttempts, Err: lastErr}
}

// DoValue executes op with the same retry semantics as Retrier.Do, returning
// the operation's value on success.
func DoValue[T any](ctx context.Context, r *Retrier, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
