package changes_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/bookingkit/pkg/changes"
)

type record struct {
	id      string
	created time.Time
	updated time.Time
}

func (r record) RecordID() string       { return r.id }
func (r record) CreatedTime() time.Time { return r.created }
func (r record) UpdatedTime() time.Time { return r.updated }

func ids(records []record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.id
	}
	return out
}

func TestClassify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	fresh := func(id string) record {
		return record{id: id, created: now.Add(-10 * time.Second), updated: now.Add(-10 * time.Second)}
	}
	historical := func(id string) record {
		return record{id: id, created: now.Add(-time.Hour), updated: now.Add(-time.Hour)}
	}

	tests := []struct {
		name        string
		previous    []record
		current     []record
		wantNew     []string
		wantChanged []string
	}{
		{
			name:     "fresh record absent from previous is new",
			previous: []record{historical("a")},
			current:  []record{fresh("b"), historical("a")},
			wantNew:  []string{"b"},
		},
		{
			name:     "initial historical snapshot produces nothing",
			previous: nil,
			current:  []record{historical("a"), historical("b"), historical("c")},
		},
		{
			name:     "recent update is changed",
			previous: []record{historical("a")},
			current: []record{{
				id:      "a",
				created: now.Add(-time.Hour),
				updated: now.Add(-5 * time.Second),
			}},
			wantChanged: []string{"a"},
		},
		{
			name:     "stale update outside window is ignored",
			previous: []record{{id: "a", created: now.Add(-2 * time.Hour), updated: now.Add(-2 * time.Hour)}},
			current:  []record{{id: "a", created: now.Add(-2 * time.Hour), updated: now.Add(-30 * time.Minute)}},
		},
		{
			name:     "identical snapshots produce nothing",
			previous: []record{historical("a"), fresh("b")},
			current:  []record{historical("a"), fresh("b")},
		},
		{
			name:     "new wins over changed",
			previous: []record{historical("a")},
			current: []record{{
				// Absent from previous AND carries a divergent update stamp:
				// must surface as new only.
				id:      "b",
				created: now.Add(-10 * time.Second),
				updated: now.Add(-2 * time.Second),
			}},
			wantNew: []string{"b"},
		},
		{
			name:     "removed records are not reported",
			previous: []record{historical("a"), historical("b")},
			current:  []record{historical("a")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := changes.Classify(tt.previous, tt.current, now, window)

			assert.Equal(t, tt.wantNew, stringsOrNil(ids(got.New)))
			assert.Equal(t, tt.wantChanged, stringsOrNil(ids(got.Changed)))

			for _, n := range got.New {
				assert.NotContains(t, ids(got.Changed), n.RecordID(),
					"a record must never appear in both lists")
			}
		})
	}
}

func stringsOrNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestClassify_TenHistoricalBookingsOnFirstSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	current := make([]record, 10)
	for i := range current {
		created := now.Add(-time.Hour)
		current[i] = record{id: fmt.Sprintf("b%d", i), created: created, updated: created}
	}

	got := changes.Classify(nil, current, now, changes.DefaultRecencyWindow)
	assert.Empty(t, got.New, "historical records must not trigger a notification storm")
	assert.Empty(t, got.Changed)
}

func TestClassify_DefaultWindowFallback(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := record{id: "a", created: now.Add(-30 * time.Second), updated: now.Add(-30 * time.Second)}

	got := changes.Classify(nil, []record{rec}, now, 0)
	require.Len(t, got.New, 1, "zero window must fall back to the 60s default")
}

func TestClassify_PreservesSnapshotOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mk := func(id string, age time.Duration) record {
		return record{id: id, created: now.Add(-age), updated: now.Add(-age)}
	}

	current := []record{mk("c", 5*time.Second), mk("a", 10*time.Second), mk("b", 15*time.Second)}
	got := changes.Classify(nil, current, now, time.Minute)

	assert.Equal(t, []string{"c", "a", "b"}, ids(got.New))
}
