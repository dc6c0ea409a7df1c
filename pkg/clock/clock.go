package clock

import "time"

// Clock abstracts the current time so that time-dependent logic
// (recency windows, reminder offsets, dedupe TTLs) is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System returns a clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// Fixed returns a clock that always reports the same instant.
func Fixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
