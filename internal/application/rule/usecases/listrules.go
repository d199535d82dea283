package usecases

import (
	"context"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// ListRulesUseCase lists rate limit rules with pagination.
type ListRulesUseCase struct {
	ruleRepo ratelimit.RuleRepository
}

func NewListRulesUseCase(ruleRepo ratelimit.RuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{ruleRepo: ruleRepo}
}

type ListRulesQuery struct {
	Active   *bool
	Page     int
	PageSize int
}

func (uc *ListRulesUseCase) Execute(ctx context.Context, query ListRulesQuery) (*dto.ListRulesResponse, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	rules, total, err := uc.ruleRepo.List(ctx, ratelimit.RuleFilter{
		Active:   query.Active,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rate limit rules: %w", err)
	}

	return &dto.ListRulesResponse{
		Rules:    dto.ToRuleResponses(rules),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
