package notify

import "errors"

var (
	// ErrPermissionDenied is returned when the platform refuses notification
	// display permission. Monitoring proceeds without display.
	ErrPermissionDenied = errors.New("notify: notification permission denied")

	// ErrDedupeStoreUnavailable wraps dedupe backend failures. The dispatcher
	// treats the event as first-seen rather than dropping it.
	ErrDedupeStoreUnavailable = errors.New("notify: dedupe store unavailable")

	// ErrInvalidRedisURL is returned when the Redis connection URL cannot be parsed.
	ErrInvalidRedisURL = errors.New("notify: failed to parse redis connection string")

	// ErrRedisNotReady is returned when all Redis connection attempts fail.
	ErrRedisNotReady = errors.New("notify: redis connection is not ready")
)
