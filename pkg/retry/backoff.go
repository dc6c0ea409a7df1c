package retry

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy computes the delay before the next write attempt.
// Implementations should be safe for concurrent use.
type BackoffStrategy interface {
	// NextInterval returns the delay to wait after the given failed attempt.
	// Attempt starts at 1 for the first retry.
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff doubles the delay between attempts. JitterFactor spreads
// out retries from independent writers hitting the same degraded store.
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

// NextInterval calculates exponential backoff with jitter.
// Formula: min(InitialInterval * (Multiplier ^ (attempt-1)) * (1 ± JitterFactor), MaxInterval)
func (e ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial == 0 {
		initial = time.Second
	}

	max := e.MaxInterval
	if max == 0 {
		max = 30 * time.Second
	}

	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))

	// Zero jitter keeps the schedule deterministic.
	if e.JitterFactor > 0 {
		randomJitter := (rand.Float64()*2 - 1) * e.JitterFactor
		interval = interval * (1 + randomJitter)
	}

	if interval > float64(max) {
		interval = float64(max)
	}

	return time.Duration(interval)
}

// FixedBackoff waits a constant interval between attempts. Tests use it to
// keep retry timing flat.
type FixedBackoff struct {
	Interval time.Duration
}

// NextInterval returns the same interval regardless of attempt number.
func (f FixedBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return f.Interval
}

// DefaultBackoffStrategy returns the write-retry schedule used by the engine:
// 1s initial delay doubling each attempt, uncapped within the attempt budget.
func DefaultBackoffStrategy() BackoffStrategy {
	return ExponentialBackoff{
		InitialInterval: time.Second,
		MaxInterval:     time.Minute,
		Multiplier:      2,
	}
}
