package docstore

import "errors"

var (
	// ErrNotFound is returned by Read when no document matches the id.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("docstore: store is closed")

	// ErrFailedToConnect is returned when the mongo server cannot be reached
	// within the configured retry budget.
	ErrFailedToConnect = errors.New("docstore: failed to connect to mongo")
)
