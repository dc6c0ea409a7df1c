// Package logger provides a configured slog.Logger factory and typed
// attribute helpers for consistent structured logging across the engine.
//
// The factory defaults to JSON output at INFO level; development setups can
// switch to text/debug via WithDevelopment. Attribute helpers keep log field
// names stable (salon_id, booking_id, event_kind, ...) so downstream log
// queries don't break when call sites change.
package logger
