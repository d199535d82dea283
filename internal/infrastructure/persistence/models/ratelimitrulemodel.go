package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
)

// RateLimitRuleModel is the persistence shape of a system-wide rate limit
// rule. WindowSeconds zero means the rule counts per calendar month.
type RateLimitRuleModel struct {
	ID            uint   `gorm:"primarykey"`
	Kind          string `gorm:"not null;size:20;default:GLOBAL"`
	LimitValue    int64  `gorm:"not null"`
	WindowSeconds int64  `gorm:"not null;default:0"`
	Active        bool   `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (RateLimitRuleModel) TableName() string {
	return constants.TableRateLimitRules
}

// BeforeCreate hook for GORM
func (r *RateLimitRuleModel) BeforeCreate(tx *gorm.DB) error {
	if r.Kind == "" {
		r.Kind = "GLOBAL"
	}
	return nil
}
