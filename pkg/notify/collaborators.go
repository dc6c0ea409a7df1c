package notify

import (
	"context"
	"time"
)

// LocalNotifier is the device-local notification collaborator (in-process UI
// alerts and OS-scheduled notifications).
type LocalNotifier interface {
	// RequestPermission asks the platform for notification display permission.
	// Returns ErrPermissionDenied when the user or platform refuses.
	RequestPermission(ctx context.Context) error

	// ShowNow displays an immediate notification.
	ShowNow(ctx context.Context, title, body string, data map[string]string) error

	// ScheduleAt registers a notification to fire at the given instant.
	// The id allows later cancellation via CancelScheduled.
	ScheduleAt(ctx context.Context, id, title, body string, data map[string]string, at time.Time) error

	// CancelScheduled removes a pending scheduled notification.
	CancelScheduled(ctx context.Context, id string) error

	// CancelAll removes every pending scheduled notification.
	CancelAll(ctx context.Context) error
}

// PushGateway is the remote push collaborator. Delivery is best-effort:
// callers log failures and never propagate them.
type PushGateway interface {
	SendPush(ctx context.Context, recipientToken, title, body string, data map[string]string) error
}

// TokenResolver maps an event to the push token of its audience. Returning
// false skips the push channel for that event.
type TokenResolver func(ctx context.Context, e Event) (token string, ok bool)
