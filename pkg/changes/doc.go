// Package changes classifies snapshot records as new or changed relative to
// the previously delivered snapshot.
//
// Hosted document stores replay the full matching history on first subscribe,
// so membership in the current snapshot alone cannot distinguish a freshly
// created booking from one made last month. Classify therefore combines two
// signals: absence from the previous snapshot and a recency window on the
// record's own timestamps. The window is injectable; the caller provides now,
// keeping the function pure and deterministic under test.
//
// Known limitation: the recency window compares wall-clock time against
// store-written timestamps. Under heavy clock skew a genuinely new record can
// fall outside the window and be treated as historical. A snapshot sequence
// number from the store would remove that ambiguity.
package changes
