// Package health aggregates readiness checks for external dependencies.
package health

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Checkable represents a component that can report its health status.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// Checker aggregates health checks for multiple components.
type Checker struct {
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker instantiates a Checker with the provided logger.
func NewChecker(log *slog.Logger) *Checker {
	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a checkable component by name.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}
	c.checks[name] = check
}

// Check runs all registered health checks and returns their statuses.
func (c *Checker) Check(ctx context.Context) map[string]string {
	results := make(map[string]string, len(c.checks))

	for name, check := range c.checks {
		if err := check.HealthCheck(ctx); err != nil {
			if c.log != nil {
				c.log.Warn("health check failed", slog.String("component", name), slog.Any("error", err))
			}
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	return results
}

// Healthy reports whether every registered check passed.
func (c *Checker) Healthy(ctx context.Context) bool {
	for _, check := range c.checks {
		if err := check.HealthCheck(ctx); err != nil {
			return false
		}
	}
	return true
}

// DBCheck wraps *sql.DB as a Checkable.
type DBCheck struct {
	DB *sql.DB
}

// HealthCheck pings the database.
func (c DBCheck) HealthCheck(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RedisCheck wraps a redis client as a Checkable.
type RedisCheck struct {
	Client *redis.Client
}

// HealthCheck pings Redis.
func (c RedisCheck) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
