package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// CreatePlanUseCase handles creation of subscription plans.
type CreatePlanUseCase struct {
	planRepo plan.PlanRepository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo plan.PlanRepository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

// Execute creates a plan. Names are trimmed and unique without regard to
// case, so "Default" and "DEFAULT" are the same plan.
func (uc *CreatePlanUseCase) Execute(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := uc.planRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(fmt.Sprintf("Plan with name '%s' already exists", name))
	}

	p, err := plan.NewSubscriptionPlan(name, req.MonthlyLimit, req.WindowLimit, req.WindowSeconds, req.ExpiresAt)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.planRepo.Create(ctx, p); err != nil {
		if errors.Is(err, plan.ErrPlanNameExists) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("Plan with name '%s' already exists", name))
		}
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("subscription plan created",
		"plan_id", p.ID(),
		"name", p.Name(),
		"monthly_limit", p.MonthlyLimit())

	return dto.ToPlanResponse(p), nil
}
