package migration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// Generator writes the golang-migrate up/down pair for the baseline schema.
// Incremental goose migrations are created through the migrate CLI instead.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.Named("migration.generator"),
	}
}

// writeFile writes content to a file
func (g *Generator) writeFile(filePath, content string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

// CreateBaselineMigration creates the initial schema migration covering the
// plan, client, rule and notification tables.
func (g *Generator) CreateBaselineMigration() error {
	g.logger.Infow("creating baseline schema migration")

	// Fixed timestamp keeps the baseline first in sort order.
	timestamp := "000001"
	name := "create_core_tables"

	upFileName := fmt.Sprintf("%s_%s.up.sql", timestamp, name)
	downFileName := fmt.Sprintf("%s_%s.down.sql", timestamp, name)

	upFilePath := filepath.Join(g.scriptsPath, upFileName)
	downFilePath := filepath.Join(g.scriptsPath, downFileName)

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	if err := g.writeFile(upFilePath, g.generateBaselineUpMigration()); err != nil {
		return fmt.Errorf("failed to create baseline up migration: %w", err)
	}

	if err := g.writeFile(downFilePath, g.generateBaselineDownMigration()); err != nil {
		return fmt.Errorf("failed to create baseline down migration: %w", err)
	}

	g.logger.Infow("baseline migration created successfully",
		"up_file", upFilePath,
		"down_file", downFilePath)

	return nil
}

// generateBaselineUpMigration generates the up migration for the core tables
func (g *Generator) generateBaselineUpMigration() string {
	return `-- Migration: Create core tables
-- Created: Initial migration
-- Description: Create the subscription plan, client, rate limit rule and notification tables

CREATE TABLE IF NOT EXISTS subscription_plans (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE,
    monthly_limit BIGINT NOT NULL,
    window_limit BIGINT NOT NULL DEFAULT 0,
    window_seconds BIGINT NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    expires_at TIMESTAMP NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    deleted_at TIMESTAMP NULL,
    INDEX idx_subscription_plans_deleted_at (deleted_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS clients (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    api_key VARCHAR(64) NOT NULL UNIQUE,
    plan_id BIGINT UNSIGNED NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    deleted_at TIMESTAMP NULL,
    INDEX idx_clients_plan_id (plan_id),
    INDEX idx_clients_deleted_at (deleted_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS rate_limit_rules (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    kind VARCHAR(20) NOT NULL DEFAULT 'GLOBAL',
    limit_value BIGINT NOT NULL,
    window_seconds BIGINT NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    INDEX idx_rate_limit_rules_active (active)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS notifications (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    message_id VARCHAR(36) NOT NULL UNIQUE,
    client_id BIGINT UNSIGNED NOT NULL,
    channel VARCHAR(10) NOT NULL,
    recipient VARCHAR(255) NOT NULL,
    message VARCHAR(5000) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'sent',
    metadata JSON NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_notifications_client_id (client_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
}

// generateBaselineDownMigration generates the down migration for the core tables
func (g *Generator) generateBaselineDownMigration() string {
	return `-- Rollback Migration: Create core tables
-- Created: Initial migration rollback
-- Description: Drop the subscription plan, client, rate limit rule and notification tables

DROP TABLE IF EXISTS notifications;
DROP TABLE IF EXISTS rate_limit_rules;
DROP TABLE IF EXISTS clients;
DROP TABLE IF EXISTS subscription_plans;
`
}
