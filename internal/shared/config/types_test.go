package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitConfigValidate(t *testing.T) {
	valid := RateLimitConfig{
		Throttling:          "hard",
		SoftDelayMs:         100,
		GlobalSoftThreshold: 0.80,
		GlobalWarnThreshold: 0.80,
		GlobalFullThreshold: 1.00,
		GlobalHardThreshold: 1.20,
	}

	tests := []struct {
		name    string
		mutate  func(*RateLimitConfig)
		wantErr bool
	}{
		{"defaults pass", func(c *RateLimitConfig) {}, false},
		{"soft mode passes", func(c *RateLimitConfig) { c.Throttling = "soft" }, false},
		{"unknown throttling", func(c *RateLimitConfig) { c.Throttling = "medium" }, true},
		{"negative delay", func(c *RateLimitConfig) { c.SoftDelayMs = -1 }, true},
		{"delay above cap", func(c *RateLimitConfig) { c.SoftDelayMs = 60001 }, true},
		{"delay at cap", func(c *RateLimitConfig) { c.SoftDelayMs = 60000 }, false},
		{"zero delay disables sleep", func(c *RateLimitConfig) { c.SoftDelayMs = 0 }, false},
		{"zero soft threshold", func(c *RateLimitConfig) { c.GlobalSoftThreshold = 0 }, true},
		{"soft above warn", func(c *RateLimitConfig) { c.GlobalSoftThreshold = 0.9; c.GlobalWarnThreshold = 0.8 }, true},
		{"warn above full", func(c *RateLimitConfig) { c.GlobalWarnThreshold = 1.1 }, true},
		{"full above hard", func(c *RateLimitConfig) { c.GlobalFullThreshold = 1.3 }, true},
		{"equal ladder", func(c *RateLimitConfig) {
			c.GlobalSoftThreshold = 1.0
			c.GlobalWarnThreshold = 1.0
			c.GlobalFullThreshold = 1.0
			c.GlobalHardThreshold = 1.0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimitConfigSoftDelay(t *testing.T) {
	cfg := RateLimitConfig{SoftDelayMs: 250}
	assert.Equal(t, 250*time.Millisecond, cfg.SoftDelay())

	cfg.Throttling = "soft"
	assert.True(t, cfg.SoftEnabled())
	cfg.Throttling = "hard"
	assert.False(t, cfg.SoftEnabled())
}

func TestDatabaseConfigGetDSN(t *testing.T) {
	mysql := DatabaseConfig{
		Driver:   "mysql",
		Host:     "db.internal",
		Port:     3306,
		Username: "ratekeeper",
		Password: "secret",
		Database: "ratekeeper",
	}
	assert.Equal(t,
		"ratekeeper:secret@tcp(db.internal:3306)/ratekeeper?charset=utf8mb4&parseTime=True&loc=UTC",
		mysql.GetDSN())

	sqlite := DatabaseConfig{Driver: "sqlite", Path: "/tmp/ratekeeper.db"}
	assert.Equal(t, "/tmp/ratekeeper.db", sqlite.GetDSN())

	sqliteDefault := DatabaseConfig{Driver: "sqlite"}
	assert.Equal(t, "ratekeeper.db", sqliteDefault.GetDSN())
}

func TestServerAndRedisAddr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8080}
	assert.Equal(t, "0.0.0.0:8080", s.GetAddr())

	r := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", r.GetAddr())
}
