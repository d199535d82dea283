package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
)

// ClientModel is the persistence shape of an API client.
type ClientModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:100"`
	APIKey    string `gorm:"column:api_key;uniqueIndex;not null;size:64"`
	PlanID    uint   `gorm:"not null;index"`
	Active    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ClientModel) TableName() string {
	return constants.TableClients
}
