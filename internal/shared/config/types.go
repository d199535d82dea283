package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	SeedDefaults   bool     `mapstructure:"seed_defaults"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	Migration       string `mapstructure:"migration"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver-specific connection string. Counters never live
// here; the relational store only holds plans, clients, rules and accepted
// notifications.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		if d.Path == "" {
			return "ratekeeper.db"
		}
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RateLimitConfig carries the throttling policy knobs. Thresholds are ratios
// of observed global usage to the global ceiling.
type RateLimitConfig struct {
	Throttling          string  `mapstructure:"throttling"`
	SoftDelayMs         int     `mapstructure:"soft_delay_ms"`
	GlobalSoftThreshold float64 `mapstructure:"global_soft_threshold"`
	GlobalWarnThreshold float64 `mapstructure:"global_warn_threshold"`
	GlobalFullThreshold float64 `mapstructure:"global_full_threshold"`
	GlobalHardThreshold float64 `mapstructure:"global_hard_threshold"`
}

// SoftDelay returns the configured soft-throttle sleep as a duration.
func (r *RateLimitConfig) SoftDelay() time.Duration {
	return time.Duration(r.SoftDelayMs) * time.Millisecond
}

// SoftEnabled reports whether the cooperative delay path is active.
func (r *RateLimitConfig) SoftEnabled() bool {
	return r.Throttling == "soft"
}

// Validate enforces the threshold ladder 0 < soft <= warn <= full <= hard and
// the delay bounds. Called once at startup; the config is read-only after.
func (r *RateLimitConfig) Validate() error {
	if r.Throttling != "hard" && r.Throttling != "soft" {
		return fmt.Errorf("ratelimit.throttling must be \"hard\" or \"soft\", got %q", r.Throttling)
	}
	if r.SoftDelayMs < 0 || r.SoftDelayMs > 60000 {
		return fmt.Errorf("ratelimit.soft_delay_ms must be in [0, 60000], got %d", r.SoftDelayMs)
	}
	if r.GlobalSoftThreshold <= 0 {
		return fmt.Errorf("ratelimit.global_soft_threshold must be positive, got %v", r.GlobalSoftThreshold)
	}
	if r.GlobalSoftThreshold > r.GlobalWarnThreshold ||
		r.GlobalWarnThreshold > r.GlobalFullThreshold ||
		r.GlobalFullThreshold > r.GlobalHardThreshold {
		return fmt.Errorf("ratelimit thresholds must satisfy soft <= warn <= full <= hard, got soft=%v warn=%v full=%v hard=%v",
			r.GlobalSoftThreshold, r.GlobalWarnThreshold, r.GlobalFullThreshold, r.GlobalHardThreshold)
	}
	return nil
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
