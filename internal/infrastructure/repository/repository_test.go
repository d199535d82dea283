package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SubscriptionPlanModel{},
		&models.ClientModel{},
		&models.RateLimitRuleModel{},
		&models.NotificationModel{},
	)
	require.NoError(t, err)

	return db
}
