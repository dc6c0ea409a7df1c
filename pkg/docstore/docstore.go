package docstore

import (
	"context"
	"time"
)

// Collection names owned by the booking domain.
const (
	CollectionBookings = "bookings"
	CollectionReviews  = "reviews"
)

// Well-known field names shared between the engine and the store documents.
const (
	FieldSalonID   = "salonId"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Record is one document delivered by a snapshot or read. CreatedAt and
// UpdatedAt are decoded from the corresponding document fields; a missing
// updatedAt falls back to createdAt.
type Record struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Query selects records of one collection filtered by salon id,
// ordered by creation time descending.
type Query struct {
	Collection string
	SalonID    string
}

// SnapshotFunc receives the full ordered set of records matching a query.
// Deliveries for one subscription are strictly sequential.
type SnapshotFunc func(records []Record)

// CancelFunc tears down one subscription. Safe to call multiple times.
type CancelFunc func()

// Store is the document-store collaborator contract. Implementations must
// deliver snapshots for a given subscription in order and never concurrently.
type Store interface {
	// Subscribe opens a live query. The current snapshot is delivered first,
	// then a fresh full snapshot after every matching change.
	Subscribe(ctx context.Context, q Query, onSnapshot SnapshotFunc) (CancelFunc, error)

	// Write creates or replaces fields of the document id in collection.
	Write(ctx context.Context, collection, id string, fields map[string]any) error

	// Read fetches a single document. Returns ErrNotFound when absent.
	Read(ctx context.Context, collection, id string) (Record, error)
}

// NewRecord builds a Record from raw document fields, decoding the timestamp
// fields. Unparseable or absent timestamps are left as zero values.
func NewRecord(id string, fields map[string]any) Record {
	r := Record{
		ID:        id,
		Fields:    fields,
		CreatedAt: timeField(fields, FieldCreatedAt),
		UpdatedAt: timeField(fields, FieldUpdatedAt),
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	return r
}

func timeField(fields map[string]any, key string) time.Time {
	switch v := fields[key].(type) {
	case time.Time:
		return v
	case interface{ Time() time.Time }:
		// Covers bson.DateTime without importing bson here.
		return v.Time()
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
