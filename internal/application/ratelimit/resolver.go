package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/cache"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// SubscriptionResolver answers which plan governs a client right now, with
// a cache-aside read path. Steady-state admissions are served entirely from
// the cache; the relational store is consulted only on a miss and the
// answer, including the negative answer, is written back.
type SubscriptionResolver struct {
	cache   cache.SubscriptionPlanCache
	clients client.ClientRepository
	plans   plan.PlanRepository
	logger  logger.Interface
}

func NewSubscriptionResolver(
	planCache cache.SubscriptionPlanCache,
	clients client.ClientRepository,
	plans plan.PlanRepository,
	logger logger.Interface,
) *SubscriptionResolver {
	return &SubscriptionResolver{
		cache:   planCache,
		clients: clients,
		plans:   plans,
		logger:  logger,
	}
}

// Resolve returns the client's effective plan snapshot, or nil when the
// client has no effectively active subscription. A nil snapshot with nil
// error is a definitive negative answer; an error means the stores could
// not answer and the caller must fail closed.
func (r *SubscriptionResolver) Resolve(ctx context.Context, clientID uint, now time.Time) (*plan.Snapshot, error) {
	cached, err := r.cache.GetPlan(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if cached != nil {
		if cached.Expired {
			return nil, nil
		}
		if !cached.Snapshot.IsEffectivelyActive(now) {
			// The snapshot outlived its subscription. Overwrite it with the
			// negative marker so following admissions skip the decode.
			r.markExpired(ctx, clientID)
			return nil, nil
		}
		return cached.Snapshot, nil
	}

	return r.loadFromStore(ctx, clientID, now)
}

// loadFromStore is the cache-miss path: read client and plan from the
// relational store and write the verdict back to the cache.
func (r *SubscriptionResolver) loadFromStore(ctx context.Context, clientID uint, now time.Time) (*plan.Snapshot, error) {
	cl, err := r.clients.GetByID(ctx, clientID)
	if errors.Is(err, client.ErrClientNotFound) {
		r.markExpired(ctx, clientID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client %d: %w", clientID, err)
	}

	p, err := r.plans.GetByID(ctx, cl.PlanID())
	if errors.Is(err, plan.ErrPlanNotFound) {
		r.markExpired(ctx, clientID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %d: %w", cl.PlanID(), err)
	}

	if !p.IsEffectivelyActive(now) {
		r.markExpired(ctx, clientID)
		return nil, nil
	}

	snapshot := plan.NewSnapshot(p)
	if err := r.cache.SetPlan(ctx, clientID, snapshot); err != nil {
		// The admission already has its answer; a failed write-back only
		// costs the next request another database read.
		r.logger.Warnw("failed to cache plan snapshot",
			"client_id", clientID,
			"error", err)
	}

	return &snapshot, nil
}

func (r *SubscriptionResolver) markExpired(ctx context.Context, clientID uint) {
	if err := r.cache.SetExpired(ctx, clientID); err != nil {
		r.logger.Warnw("failed to cache expired subscription marker",
			"client_id", clientID,
			"error", err)
	}
}
