package notify

import (
	"fmt"
	"time"

	"github.com/glowdesk/bookingkit/pkg/salon"
)

// Kind identifies the logical trigger of a notification event.
type Kind string

const (
	KindNewBooking    Kind = "new_booking"
	KindStatusChange  Kind = "status_change"
	KindNewReview     Kind = "new_review"
	KindReminder      Kind = "reminder"
	KindReviewRequest Kind = "review_request"
)

// Audience selects who the notification is for.
type Audience string

const (
	AudienceSalonOwner Audience = "salon_owner"
	AudienceCustomer   Audience = "customer"
)

// Event is one notification to be consumed exactly once by the Dispatcher.
// A zero ScheduledAt means immediate delivery; otherwise the event is handed
// to the local collaborator's scheduling channel. DedupeKey suppresses
// repeated dispatch of the same logical event across overlapping snapshots.
type Event struct {
	ID          string
	Kind        Kind
	Audience    Audience
	Title       string
	Body        string
	Data        map[string]string
	DedupeKey   string
	ScheduledAt time.Time
}

// Immediate reports whether the event should be delivered right away.
func (e Event) Immediate() bool {
	return e.ScheduledAt.IsZero()
}

// NewBookingEvent builds the salon-owner alert for a freshly created booking.
func NewBookingEvent(b salon.Booking) Event {
	return Event{
		Kind:      KindNewBooking,
		Audience:  AudienceSalonOwner,
		Title:     "New Booking!",
		Body:      fmt.Sprintf("%s on %s at %s", b.ServiceName, b.Date, b.Time),
		Data:      bookingData(b),
		DedupeKey: fmt.Sprintf("booking:%s:new", b.ID),
	}
}

// StatusChangeEvent builds the customer alert for a booking status change.
// Unmapped statuses fall back to generic copy rather than erroring.
func StatusChangeEvent(b salon.Booking) Event {
	title, body := statusCopy(b)
	return Event{
		Kind:      KindStatusChange,
		Audience:  AudienceCustomer,
		Title:     title,
		Body:      body,
		Data:      bookingData(b),
		DedupeKey: fmt.Sprintf("booking:%s:status:%s", b.ID, b.Status),
	}
}

// NewReviewEvent builds the salon-owner alert for a freshly posted review.
func NewReviewEvent(r salon.Review) Event {
	return Event{
		Kind:     KindNewReview,
		Audience: AudienceSalonOwner,
		Title:    "New Review",
		Body:     fmt.Sprintf("You received a %d-star review", r.Rating),
		Data: map[string]string{
			"reviewId": r.ID,
			"salonId":  r.SalonID,
		},
		DedupeKey: fmt.Sprintf("review:%s:new", r.ID),
	}
}

func statusCopy(b salon.Booking) (title, body string) {
	switch b.Status {
	case salon.BookingConfirmed:
		return "Booking Confirmed!", fmt.Sprintf("Your %s appointment on %s at %s is confirmed", b.ServiceName, b.Date, b.Time)
	case salon.BookingCancelled:
		return "Booking Cancelled", fmt.Sprintf("Your %s appointment on %s was cancelled", b.ServiceName, b.Date)
	case salon.BookingCompleted:
		return "Thanks for Visiting!", fmt.Sprintf("Your %s appointment is complete", b.ServiceName)
	default:
		return "Booking Updated", "Your booking status was updated"
	}
}

func bookingData(b salon.Booking) map[string]string {
	return map[string]string{
		"bookingId": b.ID,
		"salonId":   b.SalonID,
		"status":    string(b.Status),
	}
}
