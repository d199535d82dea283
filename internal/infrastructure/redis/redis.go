package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratekeeper/ratekeeper/internal/shared/config"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

var (
	client   *redis.Client
	clientMu sync.RWMutex
)

// Init opens the counter store connection and verifies it with a ping.
// Every live counter and cached plan snapshot lives here; the relational
// store never sees a request.
func Init(cfg *config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	clientMu.Lock()
	client = rdb
	clientMu.Unlock()

	logger.Info("redis connection established", "address", cfg.GetAddr(), "db", cfg.DB)
	return nil
}

// Get returns the redis client
func Get() *redis.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return client
}

// Close closes the redis connection
func Close() error {
	clientMu.RLock()
	current := client
	clientMu.RUnlock()

	if current == nil {
		return nil
	}

	if err := current.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}

	logger.Info("redis connection closed")
	return nil
}
