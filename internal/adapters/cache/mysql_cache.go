package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

const mysqlTimeFormat = "2006-01-02 15:04:05"

// MySQLCache is a MySQL implementation of core.VerdictCache for deployments
// that already run MySQL and do not want a separate Redis.
type MySQLCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMySQLCache connects to MySQL and creates the cache table.
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	if cleanupFreq <= 0 {
		cleanupFreq = 10 * time.Minute
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS verdict_cache (
			cache_key VARCHAR(128) PRIMARY KEY,
			verdict TEXT NOT NULL,
			created_at TIMESTAMP,
			expires_at TIMESTAMP,
			INDEX idx_verdict_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	c := &MySQLCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.startCleanupTask()

	return c, nil
}

// Get retrieves the verdict stored under key.
func (c *MySQLCache) Get(ctx context.Context, key string) (*core.Verdict, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
		SELECT verdict FROM verdict_cache
		WHERE cache_key = ? AND expires_at > NOW()
	`, key).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, core.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("mysql query: %w", err)
	}

	var verdict core.Verdict
	if err := json.Unmarshal([]byte(payload), &verdict); err != nil {
		return nil, fmt.Errorf("decode cached verdict: %w", err)
	}
	return &verdict, nil
}

// Set stores a verdict under key with the given TTL.
func (c *MySQLCache) Set(ctx context.Context, key string, verdict *core.Verdict, ttl time.Duration) error {
	payload, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	now := time.Now().UTC()
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO verdict_cache (cache_key, verdict, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			verdict = VALUES(verdict),
			created_at = VALUES(created_at),
			expires_at = VALUES(expires_at)
	`, key, string(payload), now.Format(mysqlTimeFormat), now.Add(ttl).Format(mysqlTimeFormat))
	if err != nil {
		return fmt.Errorf("mysql insert: %w", err)
	}
	return nil
}

// Delete removes the entry under key.
func (c *MySQLCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM verdict_cache WHERE cache_key = ?
	`, key)
	if err != nil {
		return fmt.Errorf("mysql delete: %w", err)
	}
	return nil
}

// HealthCheck reports whether the database answers a ping.
func (c *MySQLCache) HealthCheck(ctx context.Context) bool {
	return c.db.PingContext(ctx) == nil
}

// Cleanup removes expired entries.
func (c *MySQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM verdict_cache WHERE expires_at <= NOW()
	`)
	if err != nil {
		return fmt.Errorf("mysql cleanup: %w", err)
	}

	if expired, err := result.RowsAffected(); err == nil {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", expired))
	}
	return nil
}

func (c *MySQLCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the cleanup task and closes the database.
func (c *MySQLCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close MySQL database", zap.Error(err))
		}
	})
}
