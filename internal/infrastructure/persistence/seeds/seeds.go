package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/models"
	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// SeedFile is the on-disk shape of a seed manifest.
type SeedFile struct {
	Plans   []PlanSeed   `yaml:"plans" json:"plans"`
	Clients []ClientSeed `yaml:"clients" json:"clients"`
	Rules   []RuleSeed   `yaml:"rules" json:"rules"`
}

// PlanSeed declares one subscription plan to ensure.
type PlanSeed struct {
	Name          string `yaml:"name" json:"name" validate:"required,max=100"`
	MonthlyLimit  int64  `yaml:"monthly_limit" json:"monthly_limit" validate:"required,gt=0"`
	WindowLimit   int64  `yaml:"window_limit" json:"window_limit" validate:"gte=0"`
	WindowSeconds int64  `yaml:"window_seconds" json:"window_seconds" validate:"gte=0"`
}

// ClientSeed declares one API client to ensure. Plan references the plan
// by name and must match a plan in the same file or one already stored.
type ClientSeed struct {
	Name   string `yaml:"name" json:"name" validate:"required,max=100"`
	APIKey string `yaml:"api_key" json:"api_key" validate:"required,min=16,max=64"`
	Plan   string `yaml:"plan" json:"plan" validate:"required"`
	Active *bool  `yaml:"active" json:"active"`
}

// RuleSeed declares one system-wide rate limit rule to ensure.
// WindowSeconds zero makes the rule monthly.
type RuleSeed struct {
	Kind          string `yaml:"kind" json:"kind" validate:"omitempty,oneof=GLOBAL"`
	LimitValue    int64  `yaml:"limit_value" json:"limit_value" validate:"required,gt=0"`
	WindowSeconds int64  `yaml:"window_seconds" json:"window_seconds" validate:"gte=0"`
}

// EnsureDefaultPlan guarantees the fallback plan exists so freshly created
// clients always have a plan to land on.
func EnsureDefaultPlan(db *gorm.DB) error {
	plan := models.SubscriptionPlanModel{
		Name:         constants.DefaultPlanName,
		MonthlyLimit: constants.DefaultPlanMonthlyLimit,
		Active:       true,
	}

	if err := db.FirstOrCreate(&plan, models.SubscriptionPlanModel{
		Name: constants.DefaultPlanName,
	}).Error; err != nil {
		return fmt.Errorf("failed to ensure default plan: %w", err)
	}

	return nil
}

// ApplyFile loads a seed manifest and upserts its plans, clients and rules.
// Rows are matched on their natural keys, so running the same file twice
// leaves the database unchanged.
func ApplyFile(db *gorm.DB, path string, log logger.Interface) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	if err := validateFile(&file); err != nil {
		return err
	}

	if err := seedPlans(db, file.Plans); err != nil {
		return err
	}
	if err := seedClients(db, file.Clients); err != nil {
		return err
	}
	if err := seedRules(db, file.Rules); err != nil {
		return err
	}

	log.Infow("seed file applied",
		"path", path,
		"plans", len(file.Plans),
		"clients", len(file.Clients),
		"rules", len(file.Rules))

	return nil
}

func validateFile(file *SeedFile) error {
	for i, p := range file.Plans {
		if err := utils.ValidateStruct(p); err != nil {
			return fmt.Errorf("invalid plan seed at index %d: %w", i, err)
		}
	}
	for i, c := range file.Clients {
		if err := utils.ValidateStruct(c); err != nil {
			return fmt.Errorf("invalid client seed at index %d: %w", i, err)
		}
	}
	for i, r := range file.Rules {
		if err := utils.ValidateStruct(r); err != nil {
			return fmt.Errorf("invalid rule seed at index %d: %w", i, err)
		}
	}
	return nil
}

func seedPlans(db *gorm.DB, plans []PlanSeed) error {
	for _, p := range plans {
		row := models.SubscriptionPlanModel{
			Name:          p.Name,
			MonthlyLimit:  p.MonthlyLimit,
			WindowLimit:   p.WindowLimit,
			WindowSeconds: p.WindowSeconds,
			Active:        true,
		}
		if err := db.FirstOrCreate(&row, models.SubscriptionPlanModel{
			Name: p.Name,
		}).Error; err != nil {
			return fmt.Errorf("failed to seed plan %q: %w", p.Name, err)
		}
	}
	return nil
}

func seedClients(db *gorm.DB, clients []ClientSeed) error {
	for _, c := range clients {
		var plan models.SubscriptionPlanModel
		if err := db.Where("name = ?", c.Plan).First(&plan).Error; err != nil {
			return fmt.Errorf("failed to resolve plan %q for client %q: %w", c.Plan, c.Name, err)
		}

		active := true
		if c.Active != nil {
			active = *c.Active
		}

		row := models.ClientModel{
			Name:   c.Name,
			APIKey: c.APIKey,
			PlanID: plan.ID,
			Active: active,
		}
		if err := db.FirstOrCreate(&row, models.ClientModel{
			APIKey: c.APIKey,
		}).Error; err != nil {
			return fmt.Errorf("failed to seed client %q: %w", c.Name, err)
		}
	}
	return nil
}

func seedRules(db *gorm.DB, rules []RuleSeed) error {
	for _, r := range rules {
		kind := r.Kind
		if kind == "" {
			kind = "GLOBAL"
		}

		row := models.RateLimitRuleModel{
			Kind:          kind,
			LimitValue:    r.LimitValue,
			WindowSeconds: r.WindowSeconds,
			Active:        true,
		}
		if err := db.Where(map[string]any{
			"kind":           kind,
			"limit_value":    r.LimitValue,
			"window_seconds": r.WindowSeconds,
		}).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("failed to seed rate limit rule: %w", err)
		}
	}
	return nil
}
