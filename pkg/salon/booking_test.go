package salon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowdesk/bookingkit/pkg/docstore"
	"github.com/glowdesk/bookingkit/pkg/salon"
)

func TestBookingFromRecord(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	rec := docstore.NewRecord("b1", map[string]any{
		docstore.FieldSalonID:   "salon_1",
		salon.FieldCustomerID:   "cust_9",
		salon.FieldServiceName:  "Haircut",
		salon.FieldDate:         "2025-06-10",
		salon.FieldTime:         "14:30",
		salon.FieldStatus:       "confirmed",
		docstore.FieldCreatedAt: created,
		docstore.FieldUpdatedAt: updated,
	})

	b := salon.BookingFromRecord(rec)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "salon_1", b.SalonID)
	assert.Equal(t, "cust_9", b.CustomerID)
	assert.Equal(t, "Haircut", b.ServiceName)
	assert.Equal(t, salon.BookingConfirmed, b.Status)
	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, updated, b.UpdatedAt)
	assert.Equal(t, time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC), b.StartsAt())
}

func TestBookingFromRecord_MissingFields(t *testing.T) {
	t.Parallel()

	b := salon.BookingFromRecord(docstore.NewRecord("b2", map[string]any{}))

	assert.Equal(t, "b2", b.ID)
	assert.Empty(t, b.SalonID)
	assert.Empty(t, string(b.Status))
	assert.True(t, b.StartsAt().IsZero(), "unparseable date/time yields zero instant")
}

func TestReviewFromRecord(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		rating     any
		wantRating int
	}{
		{name: "int rating", rating: 5, wantRating: 5},
		{name: "int32 rating from bson", rating: int32(4), wantRating: 4},
		{name: "float64 rating from json", rating: float64(3), wantRating: 3},
		{name: "missing rating", rating: nil, wantRating: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := map[string]any{
				docstore.FieldSalonID:   "salon_1",
				salon.FieldUserID:       "user_2",
				salon.FieldReviewText:   "great cut",
				docstore.FieldCreatedAt: created,
			}
			if tt.rating != nil {
				fields[salon.FieldRating] = tt.rating
			}

			r := salon.ReviewFromRecord(docstore.NewRecord("r1", fields))
			assert.Equal(t, tt.wantRating, r.Rating)
			assert.Equal(t, "user_2", r.UserID)
			assert.Equal(t, created, r.CreatedAt)
			assert.Equal(t, created, r.UpdatedTime(), "reviews are immutable")
		})
	}
}
