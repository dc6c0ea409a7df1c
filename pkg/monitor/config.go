package monitor

import (
	"time"

	"github.com/glowdesk/bookingkit/pkg/notify"
	"github.com/glowdesk/bookingkit/pkg/retry"
)

// Config holds the tunable engine knobs, loadable via pkg/config.
type Config struct {
	RecencyWindow    time.Duration `env:"SYNC_RECENCY_WINDOW" envDefault:"60s"`    // RecencyWindow separates new records from replayed historical ones.
	DedupeTTL        time.Duration `env:"SYNC_DEDUPE_TTL" envDefault:"2m"`         // DedupeTTL is how long dispatched event keys are remembered.
	WriteMaxAttempts int           `env:"SYNC_WRITE_MAX_ATTEMPTS" envDefault:"5"`  // WriteMaxAttempts bounds store write retries.
	WriteBackoffBase time.Duration `env:"SYNC_WRITE_BACKOFF_BASE" envDefault:"1s"` // WriteBackoffBase is the initial retry delay, doubling each attempt.
}

// WithConfig applies the engine knobs from a loaded Config.
func WithConfig(cfg Config) Option {
	return func(m *Monitor) {
		WithRecencyWindow(cfg.RecencyWindow)(m)
		if cfg.DedupeTTL > 0 {
			m.dispatcherOpts = append(m.dispatcherOpts, notify.WithDedupeTTL(cfg.DedupeTTL))
		}
		if cfg.WriteMaxAttempts > 0 {
			m.retrier = retry.New(
				retry.WithMaxAttempts(cfg.WriteMaxAttempts),
				retry.WithBackoff(retry.ExponentialBackoff{
					InitialInterval: cfg.WriteBackoffBase,
					Multiplier:      2,
				}),
			)
		}
	}
}
