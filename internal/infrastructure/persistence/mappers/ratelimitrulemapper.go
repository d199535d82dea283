package mappers

import (
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
)

type RateLimitRuleMapper interface {
	ToEntity(model *models.RateLimitRuleModel) (*ratelimit.RateLimitRule, error)
	ToModel(entity *ratelimit.RateLimitRule) *models.RateLimitRuleModel
	ToEntities(models []*models.RateLimitRuleModel) ([]*ratelimit.RateLimitRule, error)
}

type RateLimitRuleMapperImpl struct{}

func NewRateLimitRuleMapper() RateLimitRuleMapper {
	return &RateLimitRuleMapperImpl{}
}

func (m *RateLimitRuleMapperImpl) ToEntity(model *models.RateLimitRuleModel) (*ratelimit.RateLimitRule, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := ratelimit.ReconstructRule(
		model.ID,
		ratelimit.RuleKind(model.Kind),
		model.LimitValue,
		model.WindowSeconds,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct rule entity: %w", err)
	}

	return entity, nil
}

func (m *RateLimitRuleMapperImpl) ToModel(entity *ratelimit.RateLimitRule) *models.RateLimitRuleModel {
	if entity == nil {
		return nil
	}

	return &models.RateLimitRuleModel{
		ID:            entity.ID(),
		Kind:          entity.Kind().String(),
		LimitValue:    entity.LimitValue(),
		WindowSeconds: entity.WindowSeconds(),
		Active:        entity.Active(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *RateLimitRuleMapperImpl) ToEntities(modelList []*models.RateLimitRuleModel) ([]*ratelimit.RateLimitRule, error) {
	entities := make([]*ratelimit.RateLimitRule, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
