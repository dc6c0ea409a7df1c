package docstore

import (
	"context"
	"maps"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development.
// Writes synchronously re-deliver full snapshots to every matching
// subscription, so deliveries for one subscription are naturally sequential.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]Record
	subscribers map[*memorySub]struct{}
	closed      bool

	// deliverMu serializes snapshot deliveries across writers so that
	// deliveries for one subscription never interleave out of order.
	deliverMu sync.Mutex
}

type memorySub struct {
	query  Query
	fn     SnapshotFunc
	ctx    context.Context
	active bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Record),
		subscribers: make(map[*memorySub]struct{}),
	}
}

// Subscribe registers a live query and immediately delivers the current
// snapshot, mirroring the initial full-history delivery of hosted stores.
func (s *MemoryStore) Subscribe(ctx context.Context, q Query, onSnapshot SnapshotFunc) (CancelFunc, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}

	sub := &memorySub{query: q, fn: onSnapshot, ctx: ctx, active: true}
	s.subscribers[sub] = struct{}{}
	snapshot := s.snapshotLocked(q)
	s.mu.Unlock()

	s.deliverMu.Lock()
	onSnapshot(snapshot)
	s.deliverMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			sub.active = false
			delete(s.subscribers, sub)
			s.mu.Unlock()
		})
	}
	return cancel, nil
}

// Write upserts a document and re-delivers snapshots to matching subscriptions.
func (s *MemoryStore) Write(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]Record)
		s.collections[collection] = coll
	}
	coll[id] = NewRecord(id, maps.Clone(fields))

	type delivery struct {
		fn       SnapshotFunc
		snapshot []Record
	}
	var deliveries []delivery
	for sub := range s.subscribers {
		if !sub.active || sub.query.Collection != collection {
			continue
		}
		if sub.ctx.Err() != nil {
			continue
		}
		deliveries = append(deliveries, delivery{sub.fn, s.snapshotLocked(sub.query)})
	}
	s.mu.Unlock()

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	for _, d := range deliveries {
		d.fn(d.snapshot)
	}
	return nil
}

// Read fetches a single document.
func (s *MemoryStore) Read(ctx context.Context, collection, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Record{}, ErrClosed
	}
	rec, ok := s.collections[collection][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Close rejects further operations and drops all subscriptions.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	clear(s.subscribers)
}

// snapshotLocked returns matching records ordered by creation time descending.
// Callers must hold s.mu.
func (s *MemoryStore) snapshotLocked(q Query) []Record {
	var out []Record
	for _, rec := range s.collections[q.Collection] {
		if q.SalonID != "" {
			if sid, _ := rec.Fields[FieldSalonID].(string); sid != q.SalonID {
				continue
			}
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
