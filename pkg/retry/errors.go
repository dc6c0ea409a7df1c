package retry

import (
	"errors"
	"fmt"
)

// ErrExhausted is the sentinel matched by errors.Is when the retry budget is
// consumed. The concrete error is always an *ExhaustedError carrying the last
// underlying failure.
var ErrExhausted = errors.New("retry: attempt budget exhausted")

// ExhaustedError reports that every attempt failed. It wraps the last
// underlying error for errors.Is/As inspection.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry: %d attempts exhausted: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Is reports a match against the ErrExhausted sentinel.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
