package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)

	c := NewRedisCache(srv.Addr(), "", 0, zap.NewNop())
	defer c.Stop()
	ctx := context.Background()

	if !c.HealthCheck(ctx) {
		t.Fatal("expected healthy cache against a live server")
	}

	if _, err := c.Get(ctx, "missing"); err != core.ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	want := sampleVerdict()
	if err := c.Set(ctx, "k1", want, time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.FraudScore != want.FraudScore ||
		got.FraudType != want.FraudType ||
		got.Explanation != want.Explanation ||
		got.ModelVersion != want.ModelVersion {
		t.Fatalf("verdict did not survive the round trip: %+v", got)
	}

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "k1"); err != core.ErrCacheMiss {
		t.Fatalf("deleted entry: expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheTTL(t *testing.T) {
	srv := miniredis.RunT(t)

	c := NewRedisCache(srv.Addr(), "", 0, zap.NewNop())
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, "k1", sampleVerdict(), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	srv.FastForward(2 * time.Minute)

	if _, err := c.Get(ctx, "k1"); err != core.ErrCacheMiss {
		t.Fatalf("expired entry: expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheDegradedMode(t *testing.T) {
	// No server listens here, so construction falls back to degraded mode.
	c := NewRedisCache("127.0.0.1:1", "", 0, zap.NewNop())
	defer c.Stop()
	ctx := context.Background()

	if c.HealthCheck(ctx) {
		t.Fatal("degraded cache must report unhealthy")
	}
	if err := c.Set(ctx, "k1", sampleVerdict(), time.Minute); err != nil {
		t.Fatalf("degraded set must no-op, got %v", err)
	}
	if _, err := c.Get(ctx, "k1"); err != core.ErrCacheMiss {
		t.Fatalf("degraded get must miss, got %v", err)
	}
}
