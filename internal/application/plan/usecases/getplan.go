package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
)

// GetPlanUseCase fetches a single plan by id.
type GetPlanUseCase struct {
	planRepo plan.PlanRepository
}

func NewGetPlanUseCase(planRepo plan.PlanRepository) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*dto.PlanResponse, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Plan not found: %d", planID))
		}
		return nil, fmt.Errorf("failed to load plan %d: %w", planID, err)
	}
	return dto.ToPlanResponse(p), nil
}
