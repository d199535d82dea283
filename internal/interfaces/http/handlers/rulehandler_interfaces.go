package handlers

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/rule/usecases"
)

// Service interface for RuleHandler - enables unit testing with mocks.

type ruleService interface {
	CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error)
	GetRule(ctx context.Context, ruleID uint) (*dto.RuleResponse, error)
	UpdateRule(ctx context.Context, ruleID uint, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error)
	ListRules(ctx context.Context, query usecases.ListRulesQuery) (*dto.ListRulesResponse, error)
}
