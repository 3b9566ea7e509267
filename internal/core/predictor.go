package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/metrics"
	"github.com/mikey/fraud-scorer/internal/whitelist"
)

const cacheKeyPrefix = "fraud_prediction:"

// PredictorOptions configures the orchestration around the scorer.
type PredictorOptions struct {
	CacheEnabled   bool
	CacheTTL       time.Duration
	CacheOpTimeout time.Duration
}

// Predictor is the single entry point the transport layer calls. It ties
// together cache lookup, ensemble scoring, cache population and latency
// accounting.
type Predictor struct {
	ensemble *EnsembleScorer
	cache    VerdictCache
	trusted  *whitelist.Checker
	logger   *zap.Logger
	opts     PredictorOptions
}

// NewPredictor creates a predictor over the given scorer and cache.
func NewPredictor(
	ensemble *EnsembleScorer,
	cache VerdictCache,
	trusted *whitelist.Checker,
	logger *zap.Logger,
	opts PredictorOptions,
) *Predictor {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if opts.CacheOpTimeout <= 0 {
		opts.CacheOpTimeout = 2 * time.Second
	}
	return &Predictor{
		ensemble: ensemble,
		cache:    cache,
		trusted:  trusted,
		logger:   logger,
		opts:     opts,
	}
}

// CacheKey derives the content-addressed cache key for a message. The same
// content and sender always produce the same key across process restarts.
func CacheKey(content, senderHeader string) string {
	sum := sha256.Sum256([]byte(content + ":" + senderHeader))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Predict scores a message, consulting the verdict cache first. Cache
// failures are treated as misses and never surface to the caller.
func (p *Predictor) Predict(ctx context.Context, req *InferenceRequest) (*Verdict, error) {
	if p.trusted.IsTrusted(req.SenderHeader) {
		p.logger.Info("Skipping scoring for trusted sender",
			zap.String("sender", req.SenderHeader))
		return &Verdict{
			IsFraud:          false,
			FraudScore:       0.0,
			FraudType:        FraudTypeNone,
			Confidence:       0.95,
			ModelPredictions: map[string]any{"trusted_sender": true},
			Explanation:      "Sender header is registered as trusted",
			ModelVersion:     ModelVersion,
		}, nil
	}

	key := CacheKey(req.Content, req.SenderHeader)

	if p.opts.CacheEnabled {
		getCtx, cancel := context.WithTimeout(ctx, p.opts.CacheOpTimeout)
		cached, err := p.cache.Get(getCtx, key)
		cancel()
		switch {
		case err == nil:
			p.logger.Debug("Cache hit", zap.String("key", key))
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		case err == ErrCacheMiss:
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		default:
			p.logger.Warn("Cache get failed, treating as miss",
				zap.String("key", key), zap.Error(err))
			metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		}
	}

	features := req.Features
	if features.Content == "" {
		features.Content = req.Content
	}
	if features.SenderHeader == "" {
		features.SenderHeader = req.SenderHeader
	}

	start := time.Now()
	verdict := p.ensemble.Score(&features)
	elapsed := time.Since(start)
	verdict.InferenceTimeMs = elapsed.Milliseconds()
	metrics.InferenceDuration.Observe(elapsed.Seconds())

	p.logger.Info("Prediction completed",
		zap.Bool("is_fraud", verdict.IsFraud),
		zap.Float64("score", verdict.FraudScore),
		zap.String("fraud_type", string(verdict.FraudType)),
		zap.Int64("inference_time_ms", verdict.InferenceTimeMs))

	if p.opts.CacheEnabled {
		// Best effort: the write is detached from the request context so an
		// abandoned request still populates the cache, bounded by the op
		// timeout. The value is idempotent, so concurrent writers are fine.
		setCtx, cancel := context.WithTimeout(context.Background(), p.opts.CacheOpTimeout)
		defer cancel()
		if err := p.cache.Set(setCtx, key, verdict, p.opts.CacheTTL); err != nil {
			p.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return verdict, nil
}

// HealthCheck reports whether the scoring engine is ready to serve.
func (p *Predictor) HealthCheck() bool {
	return p.ensemble.IsReady()
}

// CacheHealthCheck reports cache reachability. Informational only: a dead
// cache never fails readiness.
func (p *Predictor) CacheHealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.opts.CacheOpTimeout)
	defer cancel()
	return p.cache.HealthCheck(ctx)
}
