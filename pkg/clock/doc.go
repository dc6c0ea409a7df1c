// Package clock provides an injectable time source.
//
// Components that compare wall-clock time against record timestamps accept a
// clock.Clock instead of calling time.Now directly, which keeps change
// classification and notification scheduling fully deterministic under test.
//
// Example:
//
//	c := clock.Fixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
//	sched := notify.NewScheduler(notify.WithSchedulerClock(c))
package clock
