package usecases

import (
	"context"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// ListPlansUseCase lists plans with pagination and an optional active filter.
type ListPlansUseCase struct {
	planRepo plan.PlanRepository
}

func NewListPlansUseCase(planRepo plan.PlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo}
}

type ListPlansQuery struct {
	Active   *bool
	Page     int
	PageSize int
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*dto.ListPlansResponse, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	plans, total, err := uc.planRepo.List(ctx, plan.PlanFilter{
		Active:   query.Active,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &dto.ListPlansResponse{
		Plans:    dto.ToPlanResponses(plans),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
