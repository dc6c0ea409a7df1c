package subscription

import "errors"

// ErrNotFound is returned by Stop when no subscription exists for the key.
var ErrNotFound = errors.New("subscription: no active subscription for key")
