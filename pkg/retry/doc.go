// Package retry wraps document-store reads and writes with bounded
// exponential-backoff retry.
//
// A Retrier holds an attempt budget (default 5) and a BackoffStrategy
// (default: 1s doubling). Every failed attempt is observable via WithOnAttempt
// before the delay is awaited, and delays respect context cancellation. When
// the budget is consumed the caller receives an *ExhaustedError wrapping the
// last failure:
//
//	r := retry.New(retry.WithMaxAttempts(3))
//	err := r.Do(ctx, func(ctx context.Context) error {
//		return store.Write(ctx, "profiles", id, fields)
//	})
//	if errors.Is(err, retry.ErrExhausted) {
//		// give up, surface to caller
//	}
//
// The retrier never compensates for partial successes (e.g. an auth account
// created but its profile write exhausted); that decision stays with the caller.
package retry
