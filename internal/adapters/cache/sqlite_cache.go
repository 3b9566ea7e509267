package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// SQLiteCache is a SQLite implementation of core.VerdictCache for
// single-node installs that want verdicts to survive restarts.
type SQLiteCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewSQLiteCache opens (or creates) the cache database at dbPath.
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	if cleanupFreq <= 0 {
		cleanupFreq = 10 * time.Minute
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS verdict_cache (
			cache_key TEXT PRIMARY KEY,
			verdict TEXT NOT NULL,
			created_at TIMESTAMP,
			expires_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_verdict_expires_at ON verdict_cache(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	c := &SQLiteCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.startCleanupTask()

	return c, nil
}

// Get retrieves the verdict stored under key.
func (c *SQLiteCache) Get(ctx context.Context, key string) (*core.Verdict, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
		SELECT verdict FROM verdict_cache
		WHERE cache_key = ? AND expires_at > ?
	`, key, time.Now().UTC().Format(time.RFC3339)).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, core.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite query: %w", err)
	}

	var verdict core.Verdict
	if err := json.Unmarshal([]byte(payload), &verdict); err != nil {
		return nil, fmt.Errorf("decode cached verdict: %w", err)
	}
	return &verdict, nil
}

// Set stores a verdict under key with the given TTL.
func (c *SQLiteCache) Set(ctx context.Context, key string, verdict *core.Verdict, ttl time.Duration) error {
	payload, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	now := time.Now().UTC()
	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO verdict_cache (cache_key, verdict, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, key, string(payload), now.Format(time.RFC3339), now.Add(ttl).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("sqlite insert: %w", err)
	}
	return nil
}

// Delete removes the entry under key.
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM verdict_cache WHERE cache_key = ?
	`, key)
	if err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	return nil
}

// HealthCheck reports whether the database answers a ping.
func (c *SQLiteCache) HealthCheck(ctx context.Context) bool {
	return c.db.PingContext(ctx) == nil
}

// Cleanup removes expired entries.
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM verdict_cache WHERE expires_at <= ?
	`, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("sqlite cleanup: %w", err)
	}

	if expired, err := result.RowsAffected(); err == nil {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", expired))
	}
	return nil
}

func (c *SQLiteCache) startCleanupTask() {
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
func (c *SQLiteCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close SQLite database", zap.Error(err))
		}
	})
}
