package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/cache"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/ratelimit"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// UpdatePlanUseCase edits a plan and pushes the change to every subscriber:
// cached snapshots and live counters of affected clients are dropped so the
// new limits apply on their next request instead of after the cache TTL.
type UpdatePlanUseCase struct {
	planRepo   plan.PlanRepository
	clientRepo client.ClientRepository
	planCache  cache.SubscriptionPlanCache
	counters   ratelimit.CounterStore
	logger     logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo plan.PlanRepository,
	clientRepo client.ClientRepository,
	planCache cache.SubscriptionPlanCache,
	counters ratelimit.CounterStore,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:   planRepo,
		clientRepo: clientRepo,
		planCache:  planCache,
		counters:   counters,
		logger:     logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, planID uint, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Plan not found: %d", planID))
		}
		return nil, fmt.Errorf("failed to load plan %d: %w", planID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if utils.FoldCase(name) != utils.FoldCase(p.Name()) {
			exists, err := uc.planRepo.ExistsByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to check plan name: %w", err)
			}
			if exists {
				return nil, apperrors.NewConflictError(fmt.Sprintf("Plan with name '%s' already exists", name))
			}
		}
		if err := p.Rename(name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if req.MonthlyLimit != nil {
		if err := p.UpdateMonthlyLimit(*req.MonthlyLimit); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if req.WindowLimit != nil || req.WindowSeconds != nil {
		limit := p.WindowLimit()
		seconds := p.WindowSeconds()
		if req.WindowLimit != nil {
			limit = *req.WindowLimit
		}
		if req.WindowSeconds != nil {
			seconds = *req.WindowSeconds
		}
		if err := p.UpdateWindowLimit(limit, seconds); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if req.Active != nil {
		if *req.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if req.ExpiresAt != nil {
		p.SetExpiresAt(req.ExpiresAt)
	}

	if err := uc.planRepo.Update(ctx, p); err != nil {
		if errors.Is(err, plan.ErrPlanNameExists) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("Plan with name '%s' already exists", p.Name()))
		}
		if errors.Is(err, plan.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Plan not found: %d", planID))
		}
		return nil, fmt.Errorf("failed to update plan %d: %w", planID, err)
	}

	uc.invalidateSubscribers(ctx, p.ID())

	uc.logger.Infow("subscription plan updated",
		"plan_id", p.ID(),
		"name", p.Name())

	return dto.ToPlanResponse(p), nil
}

// invalidateSubscribers drops the cached snapshot and live counters of every
// client on the plan. Failures are logged per client and do not roll back
// the edit; a missed key expires with its TTL.
func (uc *UpdatePlanUseCase) invalidateSubscribers(ctx context.Context, planID uint) {
	ids, err := uc.clientRepo.ListIDsByPlanID(ctx, planID)
	if err != nil {
		uc.logger.Errorw("failed to list clients for plan invalidation",
			"plan_id", planID,
			"error", err)
		return
	}

	for _, clientID := range ids {
		if err := uc.planCache.InvalidatePlan(ctx, clientID); err != nil {
			uc.logger.Warnw("failed to invalidate cached plan",
				"client_id", clientID,
				"error", err)
		}
		if err := uc.counters.DeleteClientCounters(ctx, clientID); err != nil {
			uc.logger.Warnw("failed to drop client counters",
				"client_id", clientID,
				"error", err)
		}
	}

	if len(ids) > 0 {
		uc.logger.Infow("plan subscribers invalidated",
			"plan_id", planID,
			"clients", len(ids))
	}
}
