// Package plan wires the subscription plan management use cases behind a
// single service facade consumed by the HTTP handlers and the seeder.
package plan

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/plan/usecases"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/cache"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// Service exposes plan management operations.
type Service struct {
	createPlan *usecases.CreatePlanUseCase
	updatePlan *usecases.UpdatePlanUseCase
	getPlan    *usecases.GetPlanUseCase
	listPlans  *usecases.ListPlansUseCase
}

func NewService(
	planRepo plan.PlanRepository,
	clientRepo client.ClientRepository,
	planCache cache.SubscriptionPlanCache,
	counters ratelimit.CounterStore,
	logger logger.Interface,
) *Service {
	return &Service{
		createPlan: usecases.NewCreatePlanUseCase(planRepo, logger),
		updatePlan: usecases.NewUpdatePlanUseCase(planRepo, clientRepo, planCache, counters, logger),
		getPlan:    usecases.NewGetPlanUseCase(planRepo),
		listPlans:  usecases.NewListPlansUseCase(planRepo),
	}
}

func (s *Service) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	return s.createPlan.Execute(ctx, req)
}

func (s *Service) UpdatePlan(ctx context.Context, planID uint, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	return s.updatePlan.Execute(ctx, planID, req)
}

func (s *Service) GetPlan(ctx context.Context, planID uint) (*dto.PlanResponse, error) {
	return s.getPlan.Execute(ctx, planID)
}

func (s *Service) ListPlans(ctx context.Context, query usecases.ListPlansQuery) (*dto.ListPlansResponse, error) {
	return s.listPlans.Execute(ctx, query)
}
