// Package docstore defines the document-store collaborator contract and two
// implementations: an in-memory store for tests and local development, and a
// MongoDB-backed store using change streams.
//
// A Store delivers live query results as snapshots: the full ordered set of
// matching records, newest first. Subscribers always receive complete state,
// never deltas; change classification happens downstream in pkg/changes.
// Snapshot deliveries for one subscription are strictly sequential, which the
// sync engine relies on to keep its per-key previous-snapshot state race-free.
package docstore
