// Package monitor is the top-level coordinator of the sync engine.
//
// For every monitored salon the Monitor keeps one bookings subscription and
// one reviews subscription open against the document store. Each delivered
// snapshot is classified against the previously stored one, classified
// changes become notification events handed to the dispatcher, and the caller
// receives the full current snapshot through its callbacks.
//
// Lifecycle per salon is Idle -> Monitoring -> Idle. StartMonitoring is
// re-entrant: an already monitored salon is restarted cleanly, stored
// snapshots cleared. StopMonitoring tears down both subscriptions together;
// the UI layer never observes a half-monitored salon.
//
// The Monitor takes its collaborators (store, local notifier, push gateway)
// as constructor parameters, so tests substitute in-memory fakes for all of
// them.
package monitor
