package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/storefront/internal/domain"
)

// cacheKey is the Redis key holding the last good catalog snapshot.
const cacheKey = "catalog:products"

// ErrCacheMiss is returned by Load when no snapshot has been stored yet or
// the previous one expired.
var ErrCacheMiss = errors.New("catalog snapshot not cached")

// Cache stores the last successfully fetched catalog in Redis so a provider
// outage degrades to slightly stale data instead of the static fallback.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds a snapshot cache with the given TTL. A TTL of zero keeps
// snapshots until overwritten.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Store replaces the cached snapshot.
func (c *Cache) Store(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("store catalog snapshot: %w", err)
	}
	return nil
}

// Load returns the cached snapshot, or ErrCacheMiss when none exists.
func (c *Cache) Load(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return products, nil
}
