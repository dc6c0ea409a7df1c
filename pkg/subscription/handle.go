package subscription

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glowdesk/bookingkit/pkg/docstore"
)

// Resource is the type of records a subscription watches.
type Resource string

const (
	ResourceBookings Resource = "bookings"
	ResourceReviews  Resource = "reviews"
)

// Collection maps the resource to its document-store collection.
func (r Resource) Collection() string {
	switch r {
	case ResourceReviews:
		return docstore.CollectionReviews
	default:
		return docstore.CollectionBookings
	}
}

// Key identifies one subscription: salon id crossed with resource type.
type Key struct {
	SalonID  string
	Resource Resource
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.SalonID, k.Resource)
}

// Handle is an owned reference to one live subscription. Its active flag lets
// downstream stages discard results of deliveries that were already in flight
// when the subscription was stopped.
type Handle struct {
	key       Key
	createdAt time.Time
	cancel    docstore.CancelFunc
	active    atomic.Bool
}

func newHandle(key Key, createdAt time.Time) *Handle {
	h := &Handle{key: key, createdAt: createdAt}
	h.active.Store(true)
	return h
}

// Key returns the subscription identity.
func (h *Handle) Key() Key { return h.key }

// CreatedAt returns when the subscription was opened.
func (h *Handle) CreatedAt() time.Time { return h.createdAt }

// Active reports whether the subscription is still live. Snapshot processing
// checks this before dispatching notifications so that a delivery racing a
// Stop is discarded rather than surfaced.
func (h *Handle) Active() bool { return h.active.Load() }

// stop deactivates the handle and cancels the underlying store subscription.
func (h *Handle) stop() {
	h.active.Store(false)
	if h.cancel != nil {
		h.cancel()
	}
}
