package cache

import (
	"context"
	"errors"
	"fmt"
	"solar-cleaning-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPlanCache stores serialized plans in Redis with a per-key TTL.
type RedisPlanCache struct {
	Client *redis.Client
	// Prepended to every key.
	Prefix string
}

func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{Client: client, Prefix: "solar:"}
}

// NewRedisPlanCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisPlanCacheFromURL(ctx context.Context, url string) (*RedisPlanCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis plan cache: ping: %w", err)
	}
	return NewRedisPlanCache(client), nil
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.redis.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("redis plan cache: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	b, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: %w", err)
	}
	return b, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "plan.cache.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("redis plan cache: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}
	if ttl <= 0 {
		return nil
	}

	if err := c.Client.Set(ctx, c.Prefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
