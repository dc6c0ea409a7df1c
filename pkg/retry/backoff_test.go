package retry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowdesk/bookingkit/pkg/retry"
)

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		backoff  retry.ExponentialBackoff
		attempts []int
		want     []time.Duration
	}{
		{
			name:     "default doubling schedule",
			backoff:  retry.ExponentialBackoff{},
			attempts: []int{1, 2, 3, 4, 5},
			want: []time.Duration{
				time.Second,      // 1s * 2^0
				2 * time.Second,  // 1s * 2^1
				4 * time.Second,  // 1s * 2^2
				8 * time.Second,  // 1s * 2^3
				16 * time.Second, // 1s * 2^4
			},
		},
		{
			name: "custom values with max cap",
			backoff: retry.ExponentialBackoff{
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      3,
			},
			attempts: []int{1, 2, 3, 4},
			want: []time.Duration{
				500 * time.Millisecond,
				1500 * time.Millisecond,
				4500 * time.Millisecond,
				5 * time.Second, // capped
			},
		},
		{
			name:     "non-positive attempts return zero",
			backoff:  retry.ExponentialBackoff{},
			attempts: []int{0, -1},
			want:     []time.Duration{0, 0},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for i, attempt := range tt.attempts {
				assert.Equal(t, tt.want[i], tt.backoff.NextInterval(attempt))
			}
		})
	}
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	t.Parallel()

	b := retry.ExponentialBackoff{
		InitialInterval: time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	}

	for i := 0; i < 100; i++ {
		got := b.NextInterval(2)
		assert.GreaterOrEqual(t, got, 1800*time.Millisecond)
		assert.LessOrEqual(t, got, 2200*time.Millisecond)
	}
}

func TestFixedBackoff(t *testing.T) {
	t.Parallel()

	b := retry.FixedBackoff{Interval: 3 * time.Second}

	assert.Equal(t, 3*time.Second, b.NextInterval(1))
	assert.Equal(t, 3*time.Second, b.NextInterval(10))
	assert.Equal(t, time.Duration(0), b.NextInterval(0))
}
