// Package notify turns classified booking and review changes into
// notification events and delivers them through the local and push channels.
//
// Events are plain values produced by pure constructors (NewBookingEvent,
// StatusChangeEvent, ...) and by the Scheduler for delayed reminders and
// review requests. The Dispatcher consumes each event exactly once:
// duplicates within the dedupe TTL are dropped silently, the local channel is
// always attempted, and push delivery is best-effort - a failing gateway is
// logged and never blocks or fails the booking workflow.
//
// Two DedupeStore implementations are provided: an in-process TTL set and a
// Redis-backed store for multi-instance deployments.
package notify
