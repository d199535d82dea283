package migration

import (
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
)

// AutoMigrateModels returns every persistence model the schema is built
// from, in dependency order so child tables always follow their parents.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SubscriptionPlanModel{},
		&models.ClientModel{},
		&models.RateLimitRuleModel{},
		&models.NotificationModel{},
	}
}
