package notify

import (
	"context"
	"sync"
	"time"

	"github.com/glowdesk/bookingkit/pkg/clock"
)

// DedupeStore tracks recently dispatched event keys. Implementations must be
// safe for concurrent use from multiple dispatch paths.
type DedupeStore interface {
	// FirstSeen records key with the given ttl and reports whether this is
	// its first occurrence within that window.
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// MemoryDedupeStore is an in-process TTL set with lazy expiry.
type MemoryDedupeStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // key -> expiry
	clk     clock.Clock
}

// MemoryDedupeStoreOption configures a MemoryDedupeStore.
type MemoryDedupeStoreOption func(*MemoryDedupeStore)

// WithDedupeClock injects the time source, for deterministic expiry in tests.
func WithDedupeClock(c clock.Clock) MemoryDedupeStoreOption {
	return func(s *MemoryDedupeStore) {
		if c != nil {
			s.clk = c
		}
	}
}

// NewMemoryDedupeStore creates an empty in-process dedupe set.
func NewMemoryDedupeStore(opts ...MemoryDedupeStoreOption) *MemoryDedupeStore {
	s := &MemoryDedupeStore{
		entries: make(map[string]time.Time),
		clk:     clock.System(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FirstSeen implements DedupeStore. Expired entries are purged on every call;
// the set stays small because keys outlive their ttl by at most one dispatch.
func (s *MemoryDedupeStore) FirstSeen(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, k)
		}
	}

	if _, seen := s.entries[key]; seen {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// Len reports the number of live entries, for diagnostics and tests.
func (s *MemoryDedupeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
