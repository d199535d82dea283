package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// UpdateRuleUseCase replaces the ceiling of an existing global rule. Live
// counters are not touched: a raised ceiling takes effect on the next
// admission, a lowered one once the current bucket drains.
type UpdateRuleUseCase struct {
	ruleRepo ratelimit.RuleRepository
	logger   logger.Interface
}

func NewUpdateRuleUseCase(ruleRepo ratelimit.RuleRepository, logger logger.Interface) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

func (uc *UpdateRuleUseCase) Execute(ctx context.Context, ruleID uint, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	if !ratelimit.RuleKind(req.Kind).IsValid() {
		return nil, apperrors.NewValidationError("Only GLOBAL limit type is supported")
	}

	rule, err := uc.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, ratelimit.ErrRuleNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Rate limit rule not found: %d", ruleID))
		}
		return nil, fmt.Errorf("failed to load rule %d: %w", ruleID, err)
	}

	if err := rule.UpdateLimit(req.LimitValue, req.WindowSeconds); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update rule %d: %w", ruleID, err)
	}

	uc.logger.Infow("global rate limit rule updated",
		"rule_id", rule.ID(),
		"limit", rule.LimitValue(),
		"window_seconds", rule.WindowSeconds())

	return dto.ToRuleResponse(rule), nil
}
