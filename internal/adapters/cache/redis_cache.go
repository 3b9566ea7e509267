package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// RedisCache is a Redis implementation of core.VerdictCache. Verdicts are
// stored as JSON under their content-addressed key with a native TTL.
//
// A cache that cannot reach Redis at construction time comes up in
// degraded mode instead of failing: reads miss, writes no-op, and the
// health check reports unhealthy until the process restarts.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to Redis and verifies connectivity with a ping.
func NewRedisCache(addr, password string, db int, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis connection failed, caching degraded to no-op",
			zap.String("addr", addr), zap.Error(err))
		client.Close()
		return &RedisCache{client: nil, logger: logger}
	}

	logger.Info("Redis verdict cache connected", zap.String("addr", addr), zap.Int("db", db))
	return &RedisCache{client: client, logger: logger}
}

// Get retrieves the verdict stored under key.
func (c *RedisCache) Get(ctx context.Context, key string) (*core.Verdict, error) {
	if c.client == nil {
		return nil, core.ErrCacheMiss
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, core.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var verdict core.Verdict
	if err := json.Unmarshal(payload, &verdict); err != nil {
		return nil, fmt.Errorf("decode cached verdict: %w", err)
	}
	return &verdict, nil
}

// Set stores a verdict under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, verdict *core.Verdict, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	payload, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the entry under key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// HealthCheck reports whether Redis answers a ping.
func (c *RedisCache) HealthCheck(ctx context.Context) bool {
	if c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

// Stop closes the underlying client.
func (c *RedisCache) Stop() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			c.logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
}
