package changes

import "time"

// DefaultRecencyWindow is the threshold separating genuinely new or updated
// records from historical ones replayed in an initial snapshot.
const DefaultRecencyWindow = 60 * time.Second

// Record is the minimal contract a snapshot record must satisfy to be
// classified. Both bookings and reviews implement it.
type Record interface {
	RecordID() string
	CreatedTime() time.Time
	UpdatedTime() time.Time
}

// Result holds the classified records of one snapshot comparison, in the
// order they appear in the current snapshot. A record never appears in both
// lists: new takes priority over changed.
type Result[T Record] struct {
	New     []T
	Changed []T
}

// Classify compares the current snapshot against the previous one and reports
// which records are new or changed within the recency window.
//
// A record is new when its id is absent from previous and it was created no
// longer than window before now. The window guards against the notification
// storm a full historical snapshot would otherwise cause on first subscribe.
// A record is changed when it was present before, its update timestamp
// differs, and the update falls inside the window.
//
// Classify is a pure function; a non-positive window falls back to
// DefaultRecencyWindow.
func Classify[T Record](previous, current []T, now time.Time, window time.Duration) Result[T] {
	if window <= 0 {
		window = DefaultRecencyWindow
	}

	prev := make(map[string]T, len(previous))
	for _, rec := range previous {
		prev[rec.RecordID()] = rec
	}

	var result Result[T]
	for _, rec := range current {
		old, existed := prev[rec.RecordID()]
		if !existed {
			if now.Sub(rec.CreatedTime()) <= window {
				result.New = append(result.New, rec)
			}
			continue
		}
		if !rec.UpdatedTime().Equal(old.UpdatedTime()) && now.Sub(rec.UpdatedTime()) <= window {
			result.Changed = append(result.Changed, rec)
		}
	}
	return result
}
