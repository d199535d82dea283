package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
)

// SubscriptionPlanModel is the persistence shape of a subscription plan.
// This is the anti-corruption layer between domain and database.
type SubscriptionPlanModel struct {
	ID            uint   `gorm:"primarykey"`
	Name          string `gorm:"uniqueIndex;not null;size:100"`
	MonthlyLimit  int64  `gorm:"not null"`
	WindowLimit   int64  `gorm:"not null;default:0"`
	WindowSeconds int64  `gorm:"not null;default:0"`
	Active        bool   `gorm:"not null"`
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionPlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}
