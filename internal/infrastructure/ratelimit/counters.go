package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// CounterStore exposes maintenance operations on live admission counters,
// outside the hot evaluation path.
type CounterStore interface {
	// DeleteClientCounters removes every window and monthly counter of one
	// client so a subscription change takes effect immediately instead of
	// at the next bucket boundary.
	DeleteClientCounters(ctx context.Context, clientID uint) error
}

// RedisCounterStore implements CounterStore on the same Redis the evaluator
// writes to.
type RedisCounterStore struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisCounterStore creates a new RedisCounterStore instance.
func NewRedisCounterStore(client *redis.Client, logger logger.Interface) CounterStore {
	return &RedisCounterStore{
		client: client,
		logger: logger,
	}
}

// DeleteClientCounters walks the client's counter keyspace with SCAN and
// deletes each key. Global counters are never touched.
func (s *RedisCounterStore) DeleteClientCounters(ctx context.Context, clientID uint) error {
	pattern := clientCounterPattern(clientID)

	deleted := 0
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete counter %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan client counters: %w", err)
	}

	if deleted > 0 {
		s.logger.Debugw("dropped client counters",
			"client_id", clientID,
			"keys", deleted)
	}
	return nil
}
