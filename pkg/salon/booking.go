package salon

import (
	"time"

	"github.com/glowdesk/bookingkit/pkg/docstore"
)

// BookingStatus is the lifecycle state of a booking, mutated by salon-owner
// or customer actions outside this engine.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking document field names.
const (
	FieldCustomerID  = "customerId"
	FieldServiceName = "serviceName"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldStatus      = "status"
)

// Layouts for the date and time document fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Booking is a transient in-memory copy of one booking document. The engine
// only observes bookings; it never writes their business fields.
type Booking struct {
	ID          string
	SalonID     string
	CustomerID  string
	ServiceName string
	Date        string // DateLayout
	Time        string // TimeLayout
	Status      BookingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StartsAt combines the date and time fields into a single UTC instant.
// Returns the zero time when either field is unparseable.
func (b Booking) StartsAt() time.Time {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, b.Date+" "+b.Time, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RecordID implements changes.Record.
func (b Booking) RecordID() string { return b.ID }

// CreatedTime implements changes.Record.
func (b Booking) CreatedTime() time.Time { return b.CreatedAt }

// UpdatedTime implements changes.Record.
func (b Booking) UpdatedTime() time.Time { return b.UpdatedAt }

// BookingFromRecord decodes a store record into a Booking, tolerating missing
// fields so that partially-written documents never break a snapshot.
func BookingFromRecord(rec docstore.Record) Booking {
	return Booking{
		ID:          rec.ID,
		SalonID:     stringField(rec.Fields, docstore.FieldSalonID),
		CustomerID:  stringField(rec.Fields, FieldCustomerID),
		ServiceName: stringField(rec.Fields, FieldServiceName),
		Date:        stringField(rec.Fields, FieldDate),
		Time:        stringField(rec.Fields, FieldTime),
		Status:      BookingStatus(stringField(rec.Fields, FieldStatus)),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// BookingsFromRecords decodes a full snapshot, preserving order.
func BookingsFromRecords(records []docstore.Record) []Booking {
	bookings := make([]Booking, len(records))
	for i, rec := range records {
		bookings[i] = BookingFromRecord(rec)
	}
	return bookings
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
