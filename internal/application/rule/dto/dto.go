package dto

import (
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
)

type CreateRuleRequest struct {
	Kind          string `json:"kind" binding:"required"`
	LimitValue    int64  `json:"limitValue" binding:"required,gt=0"`
	WindowSeconds int64  `json:"windowSeconds" binding:"omitempty,gt=0"`
}

// UpdateRuleRequest replaces a rule's ceiling wholesale. Omitting
// windowSeconds converts the rule to a calendar-month one; the active flag
// is not editable.
type UpdateRuleRequest struct {
	Kind          string `json:"kind" binding:"required"`
	LimitValue    int64  `json:"limitValue" binding:"required,gt=0"`
	WindowSeconds int64  `json:"windowSeconds" binding:"omitempty,gt=0"`
}

// RuleResponse describes a system-wide ceiling. WindowSeconds of zero means
// the rule counts against the calendar month.
type RuleResponse struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"kind"`
	LimitValue    int64     `json:"limitValue"`
	WindowSeconds int64     `json:"windowSeconds,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ListRulesResponse struct {
	Rules    []*RuleResponse `json:"rules"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

func ToRuleResponse(r *ratelimit.RateLimitRule) *RuleResponse {
	return &RuleResponse{
		ID:            r.ID(),
		Kind:          r.Kind().String(),
		LimitValue:    r.LimitValue(),
		WindowSeconds: r.WindowSeconds(),
		Active:        r.Active(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

func ToRuleResponses(rules []*ratelimit.RateLimitRule) []*RuleResponse {
	responses := make([]*RuleResponse, len(rules))
	for i, r := range rules {
		responses[i] = ToRuleResponse(r)
	}
	return responses
}
