package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/mappers"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

type ClientRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ClientMapper
}

func NewClientRepository(db *gorm.DB) *ClientRepositoryImpl {
	return &ClientRepositoryImpl{
		db:     db,
		mapper: mappers.NewClientMapper(),
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return client.ErrAPIKeyExists
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set client ID: %w", err)
	}

	return nil
}

func (r *ClientRepositoryImpl) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	var model models.ClientModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByAPIKey is the per-request credential lookup. The api_key column is
// uniquely indexed so this stays a point read.
func (r *ClientRepositoryImpl) GetByAPIKey(ctx context.Context, apiKey string) (*client.Client, error) {
	var model models.ClientModel

	if err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by API key: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)

	result := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"plan_id":    model.PlanID,
			"active":     model.Active,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound
	}

	return nil
}

func (r *ClientRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepositoryImpl) List(ctx context.Context, filter client.ClientFilter) ([]*client.Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ClientModel{})

	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	p := utils.ValidatePagination(filter.Page, filter.PageSize)
	var modelList []*models.ClientModel
	err := query.Order("id ASC").
		Limit(p.PageSize).
		Offset((p.Page - 1) * p.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *ClientRepositoryImpl) ListIDsByPlanID(ctx context.Context, planID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("plan_id = ?", planID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list client IDs by plan: %w", err)
	}
	return ids, nil
}

func (r *ClientRepositoryImpl) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count clients by plan: %w", err)
	}
	return count, nil
}
