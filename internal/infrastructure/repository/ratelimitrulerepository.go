package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/mappers"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

type RateLimitRuleRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RateLimitRuleMapper
}

func NewRateLimitRuleRepository(db *gorm.DB) *RateLimitRuleRepositoryImpl {
	return &RateLimitRuleRepositoryImpl{
		db:     db,
		mapper: mappers.NewRateLimitRuleMapper(),
	}
}

func (r *RateLimitRuleRepositoryImpl) Create(ctx context.Context, rule *ratelimit.RateLimitRule) error {
	model := r.mapper.ToModel(rule)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	if err := rule.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set rule ID: %w", err)
	}

	return nil
}

func (r *RateLimitRuleRepositoryImpl) GetByID(ctx context.Context, id uint) (*ratelimit.RateLimitRule, error) {
	var model models.RateLimitRuleModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ratelimit.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get rule by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *RateLimitRuleRepositoryImpl) Update(ctx context.Context, rule *ratelimit.RateLimitRule) error {
	model := r.mapper.ToModel(rule)

	result := r.db.WithContext(ctx).Model(&models.RateLimitRuleModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"limit_value":    model.LimitValue,
			"window_seconds": model.WindowSeconds,
			"active":         model.Active,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ratelimit.ErrRuleNotFound
	}

	return nil
}

func (r *RateLimitRuleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.RateLimitRuleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ratelimit.ErrRuleNotFound
	}
	return nil
}

func (r *RateLimitRuleRepositoryImpl) List(ctx context.Context, filter ratelimit.RuleFilter) ([]*ratelimit.RateLimitRule, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RateLimitRuleModel{})

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rules: %w", err)
	}

	p := utils.ValidatePagination(filter.Page, filter.PageSize)
	var modelList []*models.RateLimitRuleModel
	err := query.Order("id ASC").
		Limit(p.PageSize).
		Offset((p.Page - 1) * p.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rules: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *RateLimitRuleRepositoryImpl) GetActiveGlobalRules(ctx context.Context) ([]*ratelimit.RateLimitRule, error) {
	var modelList []*models.RateLimitRuleModel

	err := r.db.WithContext(ctx).
		Where("kind = ? AND active = ?", string(ratelimit.RuleKindGlobal), true).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active global rules: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}
