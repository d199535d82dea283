// Package rule wires the rate limit rule management use cases behind a
// single service facade consumed by the HTTP handlers and the seeder.
package rule

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/rule/usecases"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// Service exposes rule management operations.
type Service struct {
	createRule *usecases.CreateRuleUseCase
	getRule    *usecases.GetRuleUseCase
	updateRule *usecases.UpdateRuleUseCase
	listRules  *usecases.ListRulesUseCase
}

func NewService(ruleRepo ratelimit.RuleRepository, logger logger.Interface) *Service {
	return &Service{
		createRule: usecases.NewCreateRuleUseCase(ruleRepo, logger),
		getRule:    usecases.NewGetRuleUseCase(ruleRepo),
		updateRule: usecases.NewUpdateRuleUseCase(ruleRepo, logger),
		listRules:  usecases.NewListRulesUseCase(ruleRepo),
	}
}

func (s *Service) CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	return s.createRule.Execute(ctx, req)
}

func (s *Service) GetRule(ctx context.Context, ruleID uint) (*dto.RuleResponse, error) {
	return s.getRule.Execute(ctx, ruleID)
}

func (s *Service) UpdateRule(ctx context.Context, ruleID uint, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	return s.updateRule.Execute(ctx, ruleID, req)
}

func (s *Service) ListRules(ctx context.Context, query usecases.ListRulesQuery) (*dto.ListRulesResponse, error) {
	return s.listRules.Execute(ctx, query)
}
