package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/bookingkit/pkg/notify"
)

// stepClock is a manually advanced clock for expiry tests.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(t time.Time) *stepClock {
	return &stepClock{now: t}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryDedupeStore_FirstSeen(t *testing.T) {
	t.Parallel()

	clk := newStepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := notify.NewMemoryDedupeStore(notify.WithDedupeClock(clk))
	ctx := context.Background()

	first, err := store.FirstSeen(ctx, "booking:b1:new", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	first, err = store.FirstSeen(ctx, "booking:b1:new", time.Minute)
	require.NoError(t, err)
	assert.False(t, first, "repeat within ttl must be a duplicate")

	first, err = store.FirstSeen(ctx, "booking:b2:new", time.Minute)
	require.NoError(t, err)
	assert.True(t, first, "distinct keys are independent")
}

func TestMemoryDedupeStore_Expiry(t *testing.T) {
	t.Parallel()

	clk := newStepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := notify.NewMemoryDedupeStore(notify.WithDedupeClock(clk))
	ctx := context.Background()

	_, err := store.FirstSeen(ctx, "k", time.Minute)
	require.NoError(t, err)

	clk.Advance(61 * time.Second)

	first, err := store.FirstSeen(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, first, "key must be forgotten after its ttl")
	assert.Equal(t, 1, store.Len(), "expired entries must be purged")
}

func TestMemoryDedupeStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := notify.NewMemoryDedupeStore()
	ctx := context.Background()

	const goroutines = 16
	results := make(chan bool, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := store.FirstSeen(ctx, "same-key", time.Minute)
			assert.NoError(t, err)
			results <- first
		}()
	}
	wg.Wait()
	close(results)

	firsts := 0
	for first := range results {
		if first {
			firsts++
		}
	}
	assert.Equal(t, 1, firsts, "exactly one goroutine may observe first-seen")
}
