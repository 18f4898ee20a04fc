package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/shearbook/shearbook/internal/domain"
)

const (
	barbersCacheKey  = "catalog:barbers"
	servicesCacheKey = "catalog:services"
)

// CatalogCache provides Redis-backed caching for the barber and service
// catalogs, which are read on every assistant turn but change rarely.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache constructs a catalog cache backed by the provided Redis client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CatalogCache{client: client, ttl: ttl}
}

// Barbers fetches the cached barber catalog if present.
func (c *CatalogCache) Barbers(ctx context.Context) ([]domain.Barber, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, barbersCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached barbers: %w", err)
	}

	var barbers []domain.Barber
	if err := json.Unmarshal(data, &barbers); err != nil {
		return nil, fmt.Errorf("decode cached barbers: %w", err)
	}

	return barbers, nil
}

// SetBarbers stores the barber catalog in cache.
func (c *CatalogCache) SetBarbers(ctx context.Context, barbers []domain.Barber) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(barbers)
	if err != nil {
		return fmt.Errorf("encode barbers for cache: %w", err)
	}

	if err := c.client.Set(ctx, barbersCacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached barbers: %w", err)
	}

	return nil
}

// Services fetches the cached service catalog if present.
func (c *CatalogCache) Services(ctx context.Context) ([]domain.Service, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, servicesCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached services: %w", err)
	}

	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("decode cached services: %w", err)
	}

	return services, nil
}

// SetServices stores the service catalog in cache.
func (c *CatalogCache) SetServices(ctx context.Context, services []domain.Service) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("encode services for cache: %w", err)
	}

	if err := c.client.Set(ctx, servicesCacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached services: %w", err)
	}

	return nil
}

// Invalidate drops both cached catalogs.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, barbersCacheKey, servicesCacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}

	return nil
}
