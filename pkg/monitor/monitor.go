package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/glowdesk/bookingkit/pkg/changes"
	"github.com/glowdesk/bookingkit/pkg/clock"
	"github.com/glowdesk/bookingkit/pkg/docstore"
	"github.com/glowdesk/bookingkit/pkg/logger"
	"github.com/glowdesk/bookingkit/pkg/notify"
	"github.com/glowdesk/bookingkit/pkg/retry"
	"github.com/glowdesk/bookingkit/pkg/salon"
	"github.com/glowdesk/bookingkit/pkg/subscription"
)

const deviceTokenCollection = "deviceTokens"

// Callbacks deliver full current snapshots to the UI layer. Consumers always
// see complete state, never deltas. Nil callbacks are skipped.
type Callbacks struct {
	OnBookingsUpdate func(bookings []salon.Booking)
	OnReviewsUpdate  func(reviews []salon.Review)
}

// Monitor coordinates booking and review synchronization for monitored
// salons: it owns the subscription manager, pipes every snapshot through the
// change classifier, dispatches the resulting notification events, and
// forwards full snapshots to the caller.
//
// Each salon is either idle or monitored; StartMonitoring on an already
// monitored salon restarts it cleanly.
type Monitor struct {
	store      docstore.Store
	notifier   notify.LocalNotifier
	subs       *subscription.Manager
	dispatcher *notify.Dispatcher
	scheduler  *notify.Scheduler
	retrier    *retry.Retrier
	clk        clock.Clock
	log        *slog.Logger
	window     time.Duration

	dispatcherOpts []notify.DispatcherOption

	mu     sync.Mutex
	salons map[string]*salonState
}

// salonState holds the per-key previous snapshots. Each resource has its own
// lock so snapshot processing is serialized per key, never across keys.
type salonState struct {
	bookingsMu   sync.Mutex
	prevBookings []salon.Booking

	reviewsMu   sync.Mutex
	prevReviews []salon.Review
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock injects the time source used for change classification and
// reminder scheduling.
func WithClock(c clock.Clock) Option {
	return func(m *Monitor) {
		if c != nil {
			m.clk = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Monitor) {
		if log != nil {
			m.log = log
		}
	}
}

// WithRecencyWindow overrides the window separating new records from
// historical ones replayed in initial snapshots. The dispatcher's dedupe TTL
// is raised to cover the window when it exceeds the default.
func WithRecencyWindow(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.window = d
		}
	}
}

// WithRetrier replaces the write retrier used for device-token registration.
func WithRetrier(r *retry.Retrier) Option {
	return func(m *Monitor) {
		if r != nil {
			m.retrier = r
		}
	}
}

// WithDispatcherOptions forwards options to the internally constructed
// dispatcher (dedupe store, TTL, token resolver).
func WithDispatcherOptions(opts ...notify.DispatcherOption) Option {
	return func(m *Monitor) {
		m.dispatcherOpts = append(m.dispatcherOpts, opts...)
	}
}

// New creates a Monitor over the given collaborators. The push gateway may be
// nil, disabling the push channel.
func New(store docstore.Store, local notify.LocalNotifier, push notify.PushGateway, opts ...Option) *Monitor {
	m := &Monitor{
		store:    store,
		notifier: local,
		clk:      clock.System(),
		log:      slog.Default(),
		window:   changes.DefaultRecencyWindow,
		salons:   make(map[string]*salonState),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.retrier == nil {
		m.retrier = retry.New(retry.WithOnAttempt(func(attempt int, err error) {
			m.log.LogAttrs(context.Background(), slog.LevelWarn, "store write attempt failed",
				logger.Attempt(attempt),
				logger.Error(err),
			)
		}))
	}

	m.subs = subscription.NewManager(store,
		subscription.WithManagerClock(m.clk),
		subscription.WithManagerLogger(m.log),
	)
	m.scheduler = notify.NewScheduler(notify.WithSchedulerClock(m.clk))

	// The dedupe TTL must cover the recency window, or a record replayed near
	// the window's edge would notify twice. An explicit WithDedupeTTL passed
	// through WithDispatcherOptions still wins.
	baseOpts := []notify.DispatcherOption{notify.WithDispatcherLogger(m.log)}
	if m.window > notify.DefaultDedupeTTL {
		baseOpts = append(baseOpts, notify.WithDedupeTTL(m.window))
	}
	m.dispatcher = notify.NewDispatcher(local, push, append(baseOpts, m.dispatcherOpts...)...)

	return m
}

// Initialize wires the local notification collaborator by requesting display
// permission. When permission is denied the monitor keeps running in degraded
// mode: snapshots, callbacks, and classification all proceed, only
// notification display is skipped. The typed denial is returned so the caller
// can surface it.
func (m *Monitor) Initialize(ctx context.Context) error {
	if err := m.notifier.RequestPermission(ctx); err != nil {
		m.dispatcher.DisableDisplay()
		m.log.LogAttrs(ctx, slog.LevelWarn, "notification permission denied, display disabled",
			logger.Error(err),
		)
		return fmt.Errorf("monitor: initialize: %w", err)
	}
	return nil
}

// StartMonitoring opens booking and review subscriptions for the salon.
// Calling it for an already monitored salon restarts both subscriptions and
// clears stored snapshots, matching the subscription manager's idempotent
// restart semantics. On partial setup failure everything opened so far is
// torn down: a salon is never half-monitored.
func (m *Monitor) StartMonitoring(ctx context.Context, salonID string, cb Callbacks) error {
	st := &salonState{}

	m.mu.Lock()
	m.salons[salonID] = st
	m.mu.Unlock()

	bookingsKey := subscription.Key{SalonID: salonID, Resource: subscription.ResourceBookings}
	reviewsKey := subscription.Key{SalonID: salonID, Resource: subscription.ResourceReviews}

	_, err := m.subs.Start(ctx, bookingsKey,
		docstore.Query{Collection: docstore.CollectionBookings, SalonID: salonID},
		func(h *subscription.Handle, records []docstore.Record) {
			m.handleBookings(ctx, h, st, cb, records)
		})
	if err != nil {
		// A failed restart must not leave the previous reviews subscription
		// behind for a salon that is no longer monitored.
		_ = m.subs.Stop(reviewsKey)
		m.forget(salonID)
		return fmt.Errorf("monitor: failed to subscribe to bookings for %s: %w", salonID, err)
	}

	_, err = m.subs.Start(ctx, reviewsKey,
		docstore.Query{Collection: docstore.CollectionReviews, SalonID: salonID},
		func(h *subscription.Handle, records []docstore.Record) {
			m.handleReviews(ctx, h, st, cb, records)
		})
	if err != nil {
		_ = m.subs.Stop(bookingsKey)
		m.forget(salonID)
		return fmt.Errorf("monitor: failed to subscribe to reviews for %s: %w", salonID, err)
	}

	m.log.LogAttrs(ctx, slog.LevelInfo, "monitoring started", logger.SalonID(salonID))
	return nil
}

// StopMonitoring stops both subscriptions for the salon and clears its stored
// snapshots. Safe to call for a salon that is not monitored.
func (m *Monitor) StopMonitoring(salonID string) {
	_ = m.subs.Stop(subscription.Key{SalonID: salonID, Resource: subscription.ResourceBookings})
	_ = m.subs.Stop(subscription.Key{SalonID: salonID, Resource: subscription.ResourceReviews})
	m.forget(salonID)

	m.log.LogAttrs(context.Background(), slog.LevelInfo, "monitoring stopped", logger.SalonID(salonID))
}

// Cleanup stops all monitoring and releases notification resources.
func (m *Monitor) Cleanup(ctx context.Context) {
	m.subs.StopAll()

	m.mu.Lock()
	clear(m.salons)
	m.mu.Unlock()

	if err := m.notifier.CancelAll(ctx); err != nil {
		m.log.LogAttrs(ctx, slog.LevelWarn, "failed to cancel scheduled notifications",
			logger.Error(err),
		)
	}
}

// MonitoredSalons reports the number of salons currently monitored,
// for diagnostics and tests.
func (m *Monitor) MonitoredSalons() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.salons)
}

// SubscriptionCount exposes the underlying handle count, for diagnostics and
// tests.
func (m *Monitor) SubscriptionCount() int {
	return m.subs.Count()
}

// RegisterDeviceToken persists the push token for a user with bounded retry.
// On exhaustion the typed retry error is returned; the caller decides whether
// the partial success (session usable, push unregistered) is acceptable.
func (m *Monitor) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	return m.retrier.Do(ctx, func(ctx context.Context) error {
		return m.store.Write(ctx, deviceTokenCollection, userID, map[string]any{
			"token":                 token,
			docstore.FieldUpdatedAt: m.clk.Now(),
		})
	})
}

func (m *Monitor) forget(salonID string) {
	m.mu.Lock()
	delete(m.salons, salonID)
	m.mu.Unlock()
}

func (m *Monitor) handleBookings(ctx context.Context, h *subscription.Handle, st *salonState, cb Callbacks, records []docstore.Record) {
	st.bookingsMu.Lock()
	current := salon.BookingsFromRecords(records)
	result := changes.Classify(st.prevBookings, current, m.clk.Now(), m.window)
	st.prevBookings = current
	st.bookingsMu.Unlock()

	// A delivery that raced a stop is discarded, not dispatched.
	if !h.Active() {
		return
	}

	var events []notify.Event
	for _, b := range result.New {
		events = append(events, notify.NewBookingEvent(b))
		if e, ok := m.scheduler.Reminder(b); ok {
			events = append(events, e)
		}
		if e, ok := m.scheduler.ReviewRequest(b); ok {
			events = append(events, e)
		}
	}
	for _, b := range result.Changed {
		events = append(events, notify.StatusChangeEvent(b))
	}
	m.dispatcher.DispatchAll(ctx, events)

	if cb.OnBookingsUpdate != nil {
		cb.OnBookingsUpdate(current)
	}
}

func (m *Monitor) handleReviews(ctx context.Context, h *subscription.Handle, st *salonState, cb Callbacks, records []docstore.Record) {
	st.reviewsMu.Lock()
	current := salon.ReviewsFromRecords(records)
	result := changes.Classify(st.prevReviews, current, m.clk.Now(), m.window)
	st.prevReviews = current
	st.reviewsMu.Unlock()

	if !h.Active() {
		return
	}

	var events []notify.Event
	for _, r := range result.New {
		events = append(events, notify.NewReviewEvent(r))
	}
	m.dispatcher.DispatchAll(ctx, events)

	if cb.OnReviewsUpdate != nil {
		cb.OnReviewsUpdate(current)
	}
}
