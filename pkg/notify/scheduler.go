package notify

import (
	"fmt"
	"time"

	"github.com/glowdesk/bookingkit/pkg/clock"
	"github.com/glowdesk/bookingkit/pkg/salon"
)

// Offsets for delayed notifications relative to the booking start instant.
const (
	ReminderLead       = 24 * time.Hour
	ReviewRequestDelay = 2 * time.Hour
)

// Scheduler computes delayed notification events from booking timestamps.
// All computations are deterministic given the injected clock.
type Scheduler struct {
	clk clock.Clock
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerClock injects the time source.
func WithSchedulerClock(c clock.Clock) SchedulerOption {
	return func(s *Scheduler) {
		if c != nil {
			s.clk = c
		}
	}
}

// NewScheduler creates a Scheduler using the system clock unless overridden.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{clk: clock.System()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reminder returns the appointment reminder event, firing 24h before the
// booking starts. A reminder is meaningless with less than a day of lead
// time, so past instants return ok=false instead of firing immediately.
func (s *Scheduler) Reminder(b salon.Booking) (Event, bool) {
	at := b.StartsAt().Add(-ReminderLead)
	if b.StartsAt().IsZero() || !at.After(s.clk.Now()) {
		return Event{}, false
	}

	return Event{
		Kind:        KindReminder,
		Audience:    AudienceCustomer,
		Title:       "Upcoming Appointment",
		Body:        fmt.Sprintf("Reminder: %s tomorrow at %s", b.ServiceName, b.Time),
		Data:        map[string]string{"bookingId": b.ID, "salonId": b.SalonID},
		DedupeKey:   fmt.Sprintf("booking:%s:reminder", b.ID),
		ScheduledAt: at,
	}, true
}

// ReviewRequest returns the review request event, firing 2h after the booking
// starts. Past instants are suppressed like Reminder.
func (s *Scheduler) ReviewRequest(b salon.Booking) (Event, bool) {
	at := b.StartsAt().Add(ReviewRequestDelay)
	if b.StartsAt().IsZero() || !at.After(s.clk.Now()) {
		return Event{}, false
	}

	return Event{
		Kind:        KindReviewRequest,
		Audience:    AudienceCustomer,
		Title:       "How was your visit?",
		Body:        fmt.Sprintf("Leave a review for your %s appointment", b.ServiceName),
		Data:        map[string]string{"bookingId": b.ID, "salonId": b.SalonID},
		DedupeKey:   fmt.Sprintf("booking:%s:review_request", b.ID),
		ScheduledAt: at,
	}, true
}
