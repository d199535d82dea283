package mappers

import (
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
)

type ClientMapper interface {
	ToEntity(model *models.ClientModel) (*client.Client, error)
	ToModel(entity *client.Client) *models.ClientModel
	ToEntities(models []*models.ClientModel) ([]*client.Client, error)
}

type ClientMapperImpl struct{}

func NewClientMapper() ClientMapper {
	return &ClientMapperImpl{}
}

func (m *ClientMapperImpl) ToEntity(model *models.ClientModel) (*client.Client, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := client.ReconstructClient(
		model.ID,
		model.Name,
		model.APIKey,
		model.PlanID,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct client entity: %w", err)
	}

	return entity, nil
}

func (m *ClientMapperImpl) ToModel(entity *client.Client) *models.ClientModel {
	if entity == nil {
		return nil
	}

	return &models.ClientModel{
		ID:        entity.ID(),
		Name:      entity.Name(),
		APIKey:    entity.APIKey(),
		PlanID:    entity.PlanID(),
		Active:    entity.Active(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *ClientMapperImpl) ToEntities(modelList []*models.ClientModel) ([]*client.Client, error) {
	entities := make([]*client.Client, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
