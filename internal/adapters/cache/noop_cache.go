package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// NoopCache is the degraded stand-in used when the configured backend
// cannot be constructed. Every read misses, every write is discarded, and
// the health check reports unhealthy. Requests proceed uncached.
type NoopCache struct {
	logger *zap.Logger
}

// NewNoopCache creates a no-op cache.
func NewNoopCache(logger *zap.Logger) *NoopCache {
	logger.Warn("Verdict caching disabled, all lookups will miss")
	return &NoopCache{logger: logger}
}

// Get always misses.
func (c *NoopCache) Get(_ context.Context, _ string) (*core.Verdict, error) {
	return nil, core.ErrCacheMiss
}

// Set discards the verdict.
func (c *NoopCache) Set(_ context.Context, _ string, _ *core.Verdict, _ time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NoopCache) Delete(_ context.Context, _ string) error {
	return nil
}

// HealthCheck always reports unhealthy.
func (c *NoopCache) HealthCheck(_ context.Context) bool {
	return false
}
