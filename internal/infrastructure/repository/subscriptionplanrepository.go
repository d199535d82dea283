package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/mappers"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

type SubscriptionPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionPlanMapper
}

func NewSubscriptionPlanRepository(db *gorm.DB) *SubscriptionPlanRepositoryImpl {
	return &SubscriptionPlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionPlanMapper(),
	}
}

func (r *SubscriptionPlanRepositoryImpl) Create(ctx context.Context, p *plan.SubscriptionPlan) error {
	model := r.mapper.ToModel(p)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return plan.ErrPlanNameExists
		}
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan ID: %w", err)
	}

	return nil
}

func (r *SubscriptionPlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*plan.SubscriptionPlan, error) {
	var model models.SubscriptionPlanModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionPlanRepositoryImpl) Update(ctx context.Context, p *plan.SubscriptionPlan) error {
	model := r.mapper.ToModel(p)

	result := r.db.WithContext(ctx).Model(&models.SubscriptionPlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"monthly_limit":  model.MonthlyLimit,
			"window_limit":   model.WindowLimit,
			"window_seconds": model.WindowSeconds,
			"active":         model.Active,
			"expires_at":     model.ExpiresAt,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return plan.ErrPlanNameExists
		}
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}

	return nil
}

func (r *SubscriptionPlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SubscriptionPlanModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}

func (r *SubscriptionPlanRepositoryImpl) List(ctx context.Context, filter plan.PlanFilter) ([]*plan.SubscriptionPlan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionPlanModel{})

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	p := utils.ValidatePagination(filter.Page, filter.PageSize)
	var modelList []*models.SubscriptionPlanModel
	err := query.Order("id ASC").
		Limit(p.PageSize).
		Offset((p.Page - 1) * p.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// ExistsByName reports whether a plan with the given name exists, ignoring
// case, so "Default" and "DEFAULT" cannot coexist.
func (r *SubscriptionPlanRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriptionPlanModel{}).
		Where("LOWER(name) = ?", utils.FoldCase(name)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check plan name: %w", err)
	}
	return count > 0, nil
}
