package notify

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDedupePrefix = "bookingkit:dedupe:"

// RedisDedupeStore is a DedupeStore backed by Redis, for deployments where
// multiple engine instances dispatch for the same salons. SET NX with a TTL
// gives atomic check-and-mark semantics across instances.
type RedisDedupeStore struct {
	client *redis.Client
}

// NewRedisDedupeStore wraps an existing Redis client.
func NewRedisDedupeStore(client *redis.Client) *RedisDedupeStore {
	return &RedisDedupeStore{client: client}
}

// FirstSeen implements DedupeStore.
func (s *RedisDedupeStore) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	first, err := s.client.SetNX(ctx, redisDedupePrefix+key, 1, ttl).Result()
	if err != nil {
		return false, errors.Join(ErrDedupeStoreUnavailable, err)
	}
	return first, nil
}

// RedisConfig represents the configuration for the dedupe Redis connection.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the Redis server.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of retry attempts to connect.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the interval between retry attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout is the timeout for connecting.
}

// ConnectRedis establishes a Redis connection with bounded retries.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}
