package core

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by VerdictCache.Get when no live entry exists for
// the key. Any other error means the backend itself failed; the caller is
// expected to treat that the same as a miss.
var ErrCacheMiss = errors.New("verdict cache miss")

// SignalResult is the output of a single signal model.
type SignalResult struct {
	Score      float64               `json:"score"`
	Confidence float64               `json:"confidence"`
	Label      FraudType             `json:"label,omitempty"`
	TypeScores map[FraudType]float64 `json:"type_scores,omitempty"`
}

// SignalModel is a single scoring signal. Predict must be total: it never
// returns an error and never panics for well-formed input, falling back to
// its deterministic heuristic on any internal failure.
type SignalModel interface {
	// Name identifies the signal in verdict metadata.
	Name() string

	// State reports the artifact lifecycle state, for readiness reporting.
	State() LoadState

	// Predict scores a message from its raw content and feature set.
	Predict(content string, features *FeatureSet) SignalResult
}

// VerdictCache memoizes verdicts under content-addressed keys with TTL
// expiry. Implementations must fail open: a broken backend degrades to
// misses and no-ops, never to a hard failure of the request path.
type VerdictCache interface {
	// Get retrieves the verdict stored under key. Returns ErrCacheMiss when
	// no live entry exists.
	Get(ctx context.Context, key string) (*Verdict, error)

	// Set stores a verdict under key with the given TTL.
	Set(ctx context.Context, key string, verdict *Verdict, ttl time.Duration) error

	// Delete removes the entry under key.
	Delete(ctx context.Context, key string) error

	// HealthCheck reports whether the backing store is reachable.
	HealthCheck(ctx context.Context) bool
}
