package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

func sampleVerdict() *core.Verdict {
	return &core.Verdict{
		IsFraud:      true,
		FraudScore:   0.8,
		FraudType:    core.FraudTypeKYC,
		Confidence:   0.9,
		Explanation:  "Message flagged as fraudulent (score: 0.80). Indicators: Contains suspicious links",
		ModelVersion: core.ModelVersion,
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); err != core.ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	want := sampleVerdict()
	if err := c.Set(ctx, "k1", want, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.FraudScore != want.FraudScore || got.FraudType != want.FraudType {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if !c.HealthCheck(ctx) {
		t.Fatal("memory cache must always report healthy")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, "k1", sampleVerdict(), 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "k1"); err != core.ErrCacheMiss {
		t.Fatalf("expired entry: expected ErrCacheMiss, got %v", err)
	}

	// Cleanup drops the expired entry from the map entirely.
	c.Cleanup()
	c.mu.RLock()
	_, present := c.entries["k1"]
	c.mu.RUnlock()
	if present {
		t.Fatal("cleanup left an expired entry behind")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, "k1", sampleVerdict(), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "k1"); err != core.ErrCacheMiss {
		t.Fatalf("deleted entry: expected ErrCacheMiss, got %v", err)
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache(zap.NewNop())
	ctx := context.Background()

	if err := c.Set(ctx, "k1", sampleVerdict(), time.Minute); err != nil {
		t.Fatalf("noop set errored: %v", err)
	}
	if _, err := c.Get(ctx, "k1"); err != core.ErrCacheMiss {
		t.Fatalf("noop get: expected ErrCacheMiss, got %v", err)
	}
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("noop delete errored: %v", err)
	}
	if c.HealthCheck(ctx) {
		t.Fatal("noop cache must report unhealthy")
	}
}
