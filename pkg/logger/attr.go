package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SalonID records the salon identifier under the key "salon_id".
func SalonID(id string) slog.Attr {
	return slog.String("salon_id", id)
}

// BookingID records the booking identifier under the key "booking_id".
func BookingID(id string) slog.Attr {
	return slog.String("booking_id", id)
}

// ReviewID records the review identifier under the key "review_id".
func ReviewID(id string) slog.Attr {
	return slog.String("review_id", id)
}

// EventKind records the notification event kind under the key "event_kind".
func EventKind(kind string) slog.Attr {
	return slog.String("event_kind", kind)
}

// DedupeKey records the dedupe key under the key "dedupe_key".
func DedupeKey(key string) slog.Attr {
	return slog.String("dedupe_key", key)
}

// Attempt records a retry attempt number under the key "attempt".
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Resource records the subscribed resource type under the key "resource".
func Resource(r string) slog.Attr {
	return slog.String("resource", r)
}
