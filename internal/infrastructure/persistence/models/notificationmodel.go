package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
)

// NotificationModel is the persistence shape of one accepted delivery.
// Rows are append-only; there is no soft delete.
type NotificationModel struct {
	ID        uint   `gorm:"primarykey"`
	MessageID string `gorm:"column:message_id;uniqueIndex;not null;size:36"`
	ClientID  uint   `gorm:"not null;index"`
	Channel   string `gorm:"not null;size:10"`
	Recipient string `gorm:"not null;size:255"`
	Message   string `gorm:"not null;size:5000"`
	Status    string `gorm:"not null;size:20;default:sent"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (NotificationModel) TableName() string {
	return constants.TableNotifications
}
