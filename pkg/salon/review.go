package salon

import (
	"time"

	"github.com/glowdesk/bookingkit/pkg/docstore"
)

// Review document field names.
const (
	FieldUserID     = "userId"
	FieldRating     = "rating"
	FieldReviewText = "reviewText"
)

// Review is a transient in-memory copy of one review document.
// Reviews are never updated after creation.
type Review struct {
	ID         string
	SalonID    string
	UserID     string
	Rating     int // 1-5
	ReviewText string
	CreatedAt  time.Time
}

// RecordID implements changes.Record.
func (r Review) RecordID() string { return r.ID }

// CreatedTime implements changes.Record.
func (r Review) CreatedTime() time.Time { return r.CreatedAt }

// UpdatedTime implements changes.Record. Reviews are immutable, so the
// updated time is always the creation time.
func (r Review) UpdatedTime() time.Time { return r.CreatedAt }

// ReviewFromRecord decodes a store record into a Review.
func ReviewFromRecord(rec docstore.Record) Review {
	return Review{
		ID:         rec.ID,
		SalonID:    stringField(rec.Fields, docstore.FieldSalonID),
		UserID:     stringField(rec.Fields, FieldUserID),
		Rating:     intField(rec.Fields, FieldRating),
		ReviewText: stringField(rec.Fields, FieldReviewText),
		CreatedAt:  rec.CreatedAt,
	}
}

// ReviewsFromRecords decodes a full snapshot, preserving order.
func ReviewsFromRecords(records []docstore.Record) []Review {
	reviews := make([]Review, len(records))
	for i, rec := range records {
		reviews[i] = ReviewFromRecord(rec)
	}
	return reviews
}

// intField tolerates the numeric types BSON decoding may produce.
func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
