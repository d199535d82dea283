package mappers

import (
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
)

type SubscriptionPlanMapper interface {
	ToEntity(model *models.SubscriptionPlanModel) (*plan.SubscriptionPlan, error)
	ToModel(entity *plan.SubscriptionPlan) *models.SubscriptionPlanModel
	ToEntities(models []*models.SubscriptionPlanModel) ([]*plan.SubscriptionPlan, error)
}

type SubscriptionPlanMapperImpl struct{}

func NewSubscriptionPlanMapper() SubscriptionPlanMapper {
	return &SubscriptionPlanMapperImpl{}
}

func (m *SubscriptionPlanMapperImpl) ToEntity(model *models.SubscriptionPlanModel) (*plan.SubscriptionPlan, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := plan.ReconstructSubscriptionPlan(
		model.ID,
		model.Name,
		model.MonthlyLimit,
		model.WindowLimit,
		model.WindowSeconds,
		model.Active,
		model.ExpiresAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionPlanMapperImpl) ToModel(entity *plan.SubscriptionPlan) *models.SubscriptionPlanModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionPlanModel{
		ID:            entity.ID(),
		Name:          entity.Name(),
		MonthlyLimit:  entity.MonthlyLimit(),
		WindowLimit:   entity.WindowLimit(),
		WindowSeconds: entity.WindowSeconds(),
		Active:        entity.Active(),
		ExpiresAt:     entity.ExpiresAt(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *SubscriptionPlanMapperImpl) ToEntities(modelList []*models.SubscriptionPlanModel) ([]*plan.SubscriptionPlan, error) {
	entities := make([]*plan.SubscriptionPlan, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
