package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// CachedPlan is one cache lookup answer. Expired marks the negative entry:
// the client's subscription was confirmed missing, inactive or past its
// expiry, so admission can deny without touching the database again.
type CachedPlan struct {
	Snapshot *plan.Snapshot
	Expired  bool
}

// SubscriptionPlanCache is the cache-aside store for resolved plan snapshots
// keyed by client id. It sits between the admission path and the relational
// store so steady-state admissions never read the database.
type SubscriptionPlanCache interface {
	// GetPlan returns the cached entry, or (nil, nil) on a miss.
	GetPlan(ctx context.Context, clientID uint) (*CachedPlan, error)
	SetPlan(ctx context.Context, clientID uint, snapshot plan.Snapshot) error
	// SetExpired caches a short-lived marker for a missing or lapsed
	// subscription, preventing repeated DB lookups for dead clients.
	SetExpired(ctx context.Context, clientID uint) error
	InvalidatePlan(ctx context.Context, clientID uint) error
}

const (
	planCacheKeyPrefix = "sub:cache:"
	expiredMarker      = "EXPIRED"
	expiredMarkerTTL   = 5 * time.Minute
	maxPlanTTL         = time.Hour
	minPlanTTL         = time.Minute
)

// RedisSubscriptionPlanCache implements SubscriptionPlanCache using Redis
// string values holding JSON snapshots.
type RedisSubscriptionPlanCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisSubscriptionPlanCache creates a new Redis-based plan cache.
func NewRedisSubscriptionPlanCache(client *redis.Client, logger logger.Interface) SubscriptionPlanCache {
	return &RedisSubscriptionPlanCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisSubscriptionPlanCache) key(clientID uint) string {
	return fmt.Sprintf("%s%d", planCacheKeyPrefix, clientID)
}

// GetPlan retrieves the cached snapshot or expired marker for a client.
func (c *RedisSubscriptionPlanCache) GetPlan(ctx context.Context, clientID uint) (*CachedPlan, error) {
	val, err := c.client.Get(ctx, c.key(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan from cache: %w", err)
	}

	if val == expiredMarker {
		return &CachedPlan{Expired: true}, nil
	}

	var snapshot plan.Snapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		// A corrupt entry is treated as a miss so the caller reloads from
		// the database and overwrites it.
		c.logger.Warnw("dropping corrupt plan cache entry",
			"client_id", clientID,
			"error", err)
		return nil, nil
	}

	return &CachedPlan{Snapshot: &snapshot}, nil
}

// SetPlan caches the snapshot with a TTL derived from the plan's remaining
// lifetime, so entries for expiring subscriptions refresh more often.
func (c *RedisSubscriptionPlanCache) SetPlan(ctx context.Context, clientID uint, snapshot plan.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal plan snapshot: %w", err)
	}

	ttl := snapshotTTL(snapshot, time.Now().UTC())
	if err := c.client.Set(ctx, c.key(clientID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set plan in cache: %w", err)
	}

	c.logger.Debugw("plan snapshot cached",
		"client_id", clientID,
		"plan_id", snapshot.ID,
		"ttl", ttl,
	)

	return nil
}

// SetExpired stores the short-lived negative marker.
func (c *RedisSubscriptionPlanCache) SetExpired(ctx context.Context, clientID uint) error {
	if err := c.client.Set(ctx, c.key(clientID), expiredMarker, expiredMarkerTTL).Err(); err != nil {
		return fmt.Errorf("failed to set expired marker in cache: %w", err)
	}

	c.logger.Debugw("plan expired marker set",
		"client_id", clientID,
		"ttl", expiredMarkerTTL,
	)

	return nil
}

// InvalidatePlan removes the cached entry so the next admission reloads the
// subscription from the database.
func (c *RedisSubscriptionPlanCache) InvalidatePlan(ctx context.Context, clientID uint) error {
	if err := c.client.Del(ctx, c.key(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan cache: %w", err)
	}

	c.logger.Debugw("plan cache invalidated",
		"client_id", clientID,
	)

	return nil
}

// snapshotTTL picks the cache lifetime for a snapshot. Plans without an
// expiry get the full hour; expiring plans are cached for half their
// remaining life, clamped to [1m, 1h], so a lapsed subscription is noticed
// no later than half its residual lifetime after the change.
func snapshotTTL(snapshot plan.Snapshot, now time.Time) time.Duration {
	if snapshot.ExpiresAt == nil {
		return maxPlanTTL
	}

	remaining := snapshot.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return minPlanTTL
	}

	ttl := remaining / 2
	if ttl < minPlanTTL {
		return minPlanTTL
	}
	if ttl > maxPlanTTL {
		return maxPlanTTL
	}
	return ttl
}
