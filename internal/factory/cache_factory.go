package factory

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/adapters/cache"
	"github.com/mikey/fraud-scorer/internal/config"
	"github.com/mikey/fraud-scorer/internal/core"
)

// CacheFactory creates verdict cache backends based on configuration.
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateVerdictCache creates the configured cache backend. Construction
// failures degrade to a no-op cache instead of failing startup: caching is
// a performance layer, never a hard dependency.
func (f *CacheFactory) CreateVerdictCache() core.VerdictCache {
	cacheCfg := f.cfg.GetCache()

	if !cacheCfg.Enabled {
		return cache.NewNoopCache(f.logger)
	}

	switch cacheCfg.Type {
	case "redis":
		return cache.NewRedisCache(cacheCfg.RedisAddr, cacheCfg.RedisPassword, cacheCfg.RedisDB, f.logger)
	case "memory":
		return cache.NewMemoryCache(f.logger, cacheCfg.CleanupFrequency)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cacheCfg.SQLitePath), 0755); err != nil {
			f.logger.Warn("Failed to create SQLite cache directory, caching degraded",
				zap.String("path", cacheCfg.SQLitePath), zap.Error(err))
			return cache.NewNoopCache(f.logger)
		}
		c, err := cache.NewSQLiteCache(cacheCfg.SQLitePath, f.logger, cacheCfg.CleanupFrequency)
		if err != nil {
			f.logger.Warn("Failed to open SQLite cache, caching degraded", zap.Error(err))
			return cache.NewNoopCache(f.logger)
		}
		return c
	case "mysql":
		c, err := cache.NewMySQLCache(cacheCfg.MySQLDSN, f.logger, cacheCfg.CleanupFrequency)
		if err != nil {
			f.logger.Warn("Failed to connect MySQL cache, caching degraded", zap.Error(err))
			return cache.NewNoopCache(f.logger)
		}
		return c
	default:
		f.logger.Warn("Unknown cache type, caching degraded",
			zap.String("type", cacheCfg.Type))
		return cache.NewNoopCache(f.logger)
	}
}
