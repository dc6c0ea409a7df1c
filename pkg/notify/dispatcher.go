package notify

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/bookingkit/pkg/logger"
)

// DefaultDedupeTTL keeps dispatched keys at least as long as the change
// classifier's recency window, so a change observed twice across overlapping
// snapshot deliveries is absorbed silently.
const DefaultDedupeTTL = 2 * time.Minute

// Dispatcher fans notification events out to the local and push channels with
// per-event deduplication. The local channel is always attempted; push is
// best-effort and never fails a dispatch.
type Dispatcher struct {
	local    LocalNotifier
	push     PushGateway
	dedupe   DedupeStore
	tokens   TokenResolver
	ttl      time.Duration
	log      *slog.Logger
	disabled atomic.Bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDedupeStore replaces the default in-memory dedupe set.
func WithDedupeStore(store DedupeStore) DispatcherOption {
	return func(d *Dispatcher) {
		if store != nil {
			d.dedupe = store
		}
	}
}

// WithDedupeTTL sets how long dispatched keys are remembered.
func WithDedupeTTL(ttl time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithTokenResolver enables the push channel by mapping events to recipient
// tokens. Without a resolver every event skips push.
func WithTokenResolver(fn TokenResolver) DispatcherOption {
	return func(d *Dispatcher) {
		d.tokens = fn
	}
}

// WithDispatcherLogger sets the logger.
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a Dispatcher. The push gateway may be nil, in which
// case the push channel is skipped entirely.
func NewDispatcher(local LocalNotifier, push PushGateway, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		local:  local,
		push:   push,
		dedupe: NewMemoryDedupeStore(),
		ttl:    DefaultDedupeTTL,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DisableDisplay puts the dispatcher in degraded mode: events are still
// deduplicated and observable in logs, but nothing is shown or pushed.
// Used when notification permission was denied.
func (d *Dispatcher) DisableDisplay() {
	d.disabled.Store(true)
}

// Dispatch delivers one event. Duplicates within the dedupe TTL are dropped
// silently. Scheduled events (non-zero ScheduledAt) go to the local
// scheduling channel only; immediate events go to the local channel and,
// when a token resolves, to the push gateway. Channel failures are logged
// and absorbed; dispatch itself never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	if e.DedupeKey != "" {
		first, err := d.dedupe.FirstSeen(ctx, e.DedupeKey, d.ttl)
		if err != nil {
			// Prefer a possible duplicate alert over a silently lost one.
			d.log.LogAttrs(ctx, slog.LevelWarn, "dedupe store unavailable, dispatching anyway",
				logger.DedupeKey(e.DedupeKey),
				logger.Error(err),
			)
		} else if !first {
			d.log.LogAttrs(ctx, slog.LevelDebug, "duplicate event dropped",
				logger.EventKind(string(e.Kind)),
				logger.DedupeKey(e.DedupeKey),
			)
			return
		}
	}

	if d.disabled.Load() {
		d.log.LogAttrs(ctx, slog.LevelDebug, "notification display disabled, event suppressed",
			logger.EventKind(string(e.Kind)),
			logger.DedupeKey(e.DedupeKey),
		)
		return
	}

	if !e.Immediate() {
		if err := d.local.ScheduleAt(ctx, e.ID, e.Title, e.Body, e.Data, e.ScheduledAt); err != nil {
			d.log.LogAttrs(ctx, slog.LevelError, "failed to schedule local notification",
				logger.EventKind(string(e.Kind)),
				logger.Error(err),
			)
		}
		return
	}

	if err := d.local.ShowNow(ctx, e.Title, e.Body, e.Data); err != nil {
		// Local display failure must not block the booking workflow.
		d.log.LogAttrs(ctx, slog.LevelError, "failed to show local notification",
			logger.EventKind(string(e.Kind)),
			logger.Error(err),
		)
	}

	d.sendPush(ctx, e)
}

// DispatchAll delivers a batch of events in order, continuing past individual
// failures.
func (d *Dispatcher) DispatchAll(ctx context.Context, events []Event) {
	for _, e := range events {
		d.Dispatch(ctx, e)
	}
}

func (d *Dispatcher) sendPush(ctx context.Context, e Event) {
	if d.push == nil || d.tokens == nil {
		return
	}

	token, ok := d.tokens(ctx, e)
	if !ok {
		return
	}

	if err := d.push.SendPush(ctx, token, e.Title, e.Body, e.Data); err != nil {
		// Push is best-effort: log, never retry, never propagate.
		d.log.LogAttrs(ctx, slog.LevelWarn, "failed to send push notification",
			logger.EventKind(string(e.Kind)),
			slog.String("audience", string(e.Audience)),
			logger.Error(err),
		)
	}
}
