package usecases

import (
	"context"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// CreateRuleUseCase registers a system-wide ceiling. Only GLOBAL rules
// exist; per-client ceilings come from subscription plans.
type CreateRuleUseCase struct {
	ruleRepo ratelimit.RuleRepository
	logger   logger.Interface
}

func NewCreateRuleUseCase(ruleRepo ratelimit.RuleRepository, logger logger.Interface) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

func (uc *CreateRuleUseCase) Execute(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	if !ratelimit.RuleKind(req.Kind).IsValid() {
		return nil, apperrors.NewValidationError("Only GLOBAL limit type is supported")
	}

	rule, err := ratelimit.NewGlobalRule(req.LimitValue, req.WindowSeconds)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create rate limit rule: %w", err)
	}

	uc.logger.Infow("global rate limit rule created",
		"rule_id", rule.ID(),
		"limit", rule.LimitValue(),
		"window_seconds", rule.WindowSeconds())

	return dto.ToRuleResponse(rule), nil
}
