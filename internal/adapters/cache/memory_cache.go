// Package cache provides the verdict cache backends. All backends fail
// open: a broken store degrades to misses and no-ops instead of failing
// the request path.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// MemoryCache is an in-memory implementation of core.VerdictCache, intended
// for development and single-process deployments.
type MemoryCache struct {
	entries     map[string]*core.CacheEntry
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMemoryCache creates a new in-memory cache with a background cleanup
// task running at cleanupFreq.
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	if cleanupFreq <= 0 {
		cleanupFreq = 10 * time.Minute
	}

	c := &MemoryCache{
		entries:     make(map[string]*core.CacheEntry),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.startCleanupTask()

	return c
}

// Get retrieves the verdict stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) (*core.Verdict, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, core.ErrCacheMiss
	}

	return entry.Verdict, nil
}

// Set stores a verdict under key with the given TTL.
func (c *MemoryCache) Set(_ context.Context, key string, verdict *core.Verdict, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &core.CacheEntry{
		Key:       key,
		Verdict:   verdict,
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the entry under key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// HealthCheck always reports healthy for the in-memory backend.
func (c *MemoryCache) HealthCheck(_ context.Context) bool {
	return true
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			expired++
		}
	}

	c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expired))
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task.
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
