package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
)

// GetRuleUseCase fetches a single rule by id.
type GetRuleUseCase struct {
	ruleRepo ratelimit.RuleRepository
}

func NewGetRuleUseCase(ruleRepo ratelimit.RuleRepository) *GetRuleUseCase {
	return &GetRuleUseCase{ruleRepo: ruleRepo}
}

func (uc *GetRuleUseCase) Execute(ctx context.Context, ruleID uint) (*dto.RuleResponse, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, ratelimit.ErrRuleNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Rate limit rule not found: %d", ruleID))
		}
		return nil, fmt.Errorf("failed to load rule %d: %w", ruleID, err)
	}
	return dto.ToRuleResponse(rule), nil
}
