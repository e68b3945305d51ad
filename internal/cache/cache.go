// Package cache provides a best-effort Redis read cache for the public game
// catalog. A nil client disables caching; callers always fall back to the
// database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palpita/lottery-api/internal/config"
)

// NewRedisClient connects to Redis using the app config. It returns nil when
// the server cannot be reached so callers degrade to uncached reads.
func NewRedisClient(conf *config.RedisConfig) *redis.Client {
	if conf == nil || conf.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}

type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalog(client *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{
		client: client,
		ttl:    ttl,
	}
}

// Get unmarshals the cached value for key into dest. The boolean reports a
// cache hit; errors are deliberately not surfaced to callers.
func (c *Catalog) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key for the configured TTL, best effort.
func (c *Catalog) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops key, best effort.
func (c *Catalog) Invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}

	c.client.Del(ctx, key)
}
