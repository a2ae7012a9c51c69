package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guineapay/djomy-bridge/internal/domain/port/persistence"
)

// Event processing markers stored in Redis
const (
	statusInProgress = "IN_PROGRESS"
	statusProcessed  = "PROCESSED"

	// A short expiry on IN_PROGRESS prevents a crashed handler from
	// blocking redelivery forever.
	inProgressExpiry = 10 * time.Second
	processedExpiry  = 24 * time.Hour
)

// RedisEventStore implements the EventStore port on Redis. Duplicate
// detection relies on SET NX so concurrent deliveries of the same event
// race atomically instead of both proceeding.
type RedisEventStore struct {
	client *redis.Client
}

// NewRedisEventStore creates an event store backed by the given Redis server
func NewRedisEventStore(addr, password string, db int) *RedisEventStore {
	return &RedisEventStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping verifies connectivity to the Redis server
func (s *RedisEventStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection
func (s *RedisEventStore) Close() error {
	return s.client.Close()
}

// CheckOrSetInProgress returns true when the event was already processed or
// is currently in flight; otherwise it atomically marks the event in
// progress and returns false.
func (s *RedisEventStore) CheckOrSetInProgress(ctx context.Context, eventKey string) (bool, error) {
	key := storeKey(eventKey)

	status, err := s.client.Get(ctx, key).Result()
	if err == nil && status == statusProcessed {
		return true, nil
	}

	set, err := s.client.SetNX(ctx, key, statusInProgress, inProgressExpiry).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX error: %w", err)
	}
	if !set {
		// Another delivery holds the key.
		return true, nil
	}
	return false, nil
}

// SetProcessed marks the event as fully processed with a long expiry
func (s *RedisEventStore) SetProcessed(ctx context.Context, eventKey string) error {
	return s.client.Set(ctx, storeKey(eventKey), statusProcessed, processedExpiry).Err()
}

func storeKey(eventKey string) string {
	return fmt.Sprintf("djomy:event:%s", eventKey)
}

var _ persistence.EventStore = (*RedisEventStore)(nil)
