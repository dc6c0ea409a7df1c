// Package subscription tracks live document-store query subscriptions keyed
// by salon id and resource type.
//
// The Manager guarantees at most one active subscription per key: starting a
// key that is already live cancels the old handle first, so re-entrant starts
// are idempotent. Snapshots are forwarded verbatim in the store's delivery
// order; the Manager never reorders or coalesces. A stopped Handle keeps an
// inactive flag that downstream stages consult to discard deliveries that
// were already in flight at cancellation time.
package subscription
