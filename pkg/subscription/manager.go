package subscription

import (
	"context"
	"log/slog"
	"sync"

	"github.com/glowdesk/bookingkit/pkg/clock"
	"github.com/glowdesk/bookingkit/pkg/docstore"
	"github.com/glowdesk/bookingkit/pkg/logger"
)

// SnapshotHandler receives every snapshot delivered for a subscription,
// in delivery order, together with the owning handle.
type SnapshotHandler func(h *Handle, records []docstore.Record)

// Manager tracks live subscriptions keyed by salon id and resource type,
// guaranteeing at most one active subscription per key.
type Manager struct {
	store docstore.Store
	clk   clock.Clock
	log   *slog.Logger

	mu      sync.Mutex
	handles map[Key]*Handle
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerClock injects the time source used for handle creation stamps.
func WithManagerClock(c clock.Clock) ManagerOption {
	return func(m *Manager) {
		if c != nil {
			m.clk = c
		}
	}
}

// WithManagerLogger sets the logger.
func WithManagerLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store docstore.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   store,
		clk:     clock.System(),
		log:     slog.Default(),
		handles: make(map[Key]*Handle),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start opens a subscription for key. An existing subscription for the same
// key is cancelled first, making restarts idempotent. Snapshots delivered by
// the store are forwarded verbatim to onSnapshot in delivery order; the
// forwarding stops as soon as the handle is deactivated.
func (m *Manager) Start(ctx context.Context, key Key, q docstore.Query, onSnapshot SnapshotHandler) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.handles[key]; ok {
		old.stop()
		delete(m.handles, key)
		m.log.LogAttrs(ctx, slog.LevelDebug, "restarting subscription",
			logger.SalonID(key.SalonID),
			logger.Resource(string(key.Resource)),
		)
	}

	h := newHandle(key, m.clk.Now())
	cancel, err := m.store.Subscribe(ctx, q, func(records []docstore.Record) {
		if !h.Active() {
			return
		}
		onSnapshot(h, records)
	})
	if err != nil {
		return nil, err
	}
	h.cancel = cancel
	m.handles[key] = h

	m.log.LogAttrs(ctx, slog.LevelInfo, "subscription started",
		logger.SalonID(key.SalonID),
		logger.Resource(string(key.Resource)),
	)
	return h, nil
}

// Stop cancels and removes the subscription for key.
// Returns ErrNotFound when no subscription exists; callers that treat stop as
// idempotent may ignore that error.
func (m *Manager) Stop(key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.handles[key]
	if !ok {
		return ErrNotFound
	}
	h.stop()
	delete(m.handles, key)
	return nil
}

// StopAll cancels every tracked subscription. Used at process teardown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, h := range m.handles {
		h.stop()
		delete(m.handles, key)
	}
}

// Count reports the number of active subscriptions, for diagnostics and tests.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}
