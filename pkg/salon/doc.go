// Package salon holds the booking and review domain models and their
// decoders from raw document-store records.
//
// Both models satisfy the changes.Record contract so that snapshots of either
// resource flow through the same change classifier.
package salon
