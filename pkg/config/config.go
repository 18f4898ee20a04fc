package config

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the Shearbook booking service.
type Config struct {
	AppEnv string `mapstructure:"app_env"`

	HTTP      HTTPConfig      `mapstructure:"http" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logger    LoggerConfig    `mapstructure:"logger" validate:"required"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Email     EmailConfig     `mapstructure:"email"`
	Shop      ShopConfig      `mapstructure:"shop"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// HTTPConfig configures the public HTTP listener.
type HTTPConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig configures the optional Redis connection used for session
// storage and the background job queue.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LoggerConfig configures slog output.
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`

	// File enables rotated file output in addition to stdout when non-empty.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// SessionsConfig controls conversation session retention.
type SessionsConfig struct {
	// TTL bounds how long an idle conversation is kept before eviction.
	TTL time.Duration `mapstructure:"ttl"`
	// SweepInterval controls how often the in-memory cleaner runs.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// EmailConfig configures the transactional email sender.
type EmailConfig struct {
	// TestMode prints confirmations to the log instead of sending.
	TestMode bool   `mapstructure:"test_mode"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}

// RateLimitConfig throttles the public chat endpoints per client.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ShopConfig holds assistant-facing shop details.
type ShopConfig struct {
	// Phone is quoted to the user when booking persistence fails.
	Phone string `mapstructure:"phone"`
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	sslmode := c.Database.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		sslmode,
	)
}
