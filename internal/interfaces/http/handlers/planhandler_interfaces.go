package handlers

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/plan/usecases"
)

// Service interface for PlanHandler - enables unit testing with mocks.

type planService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, planID uint, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, planID uint) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, query usecases.ListPlansQuery) (*dto.ListPlansResponse, error)
}
