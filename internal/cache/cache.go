package cache

import (
	"context"
	"strconv"
	"time"

	"foodmarket/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for customer-facing restaurant reads. All
// operations are best effort; callers fall back to the database on any error.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

// New creates a cache from configuration
func New(cfg *config.RedisConfig, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{Client: client, TTL: ttl}
}

// RestaurantListKey is the cache key for the public restaurant listing
func (c *Cache) RestaurantListKey() string {
	return "restaurants:active"
}

// RestaurantKey is the cache key for a single restaurant detail payload
func (c *Cache) RestaurantKey(id uint) string {
	return "restaurants:" + strconv.FormatUint(uint64(id), 10)
}

// Get returns the cached payload for key, or ok=false on miss or error
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the payload under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key, value string) error {
	return c.Client.Set(ctx, key, value, c.TTL).Err()
}

// Invalidate removes the given keys
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
