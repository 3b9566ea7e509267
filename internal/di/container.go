package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/adapters/httpserver"
	"github.com/mikey/fraud-scorer/internal/config"
	"github.com/mikey/fraud-scorer/internal/core"
	"github.com/mikey/fraud-scorer/internal/factory"
	"github.com/mikey/fraud-scorer/internal/logging"
	"github.com/mikey/fraud-scorer/internal/utils"
	"github.com/mikey/fraud-scorer/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container.
// Everything is constructed once at process start and passed by reference;
// there is no hidden global state beyond the metrics registry.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register signal models
	if err := container.Provide(func(f *factory.ModelFactory) []core.SignalModel {
		return f.CreateSignalModels()
	}); err != nil {
		return nil, err
	}

	// Register verdict cache
	if err := container.Provide(func(f *factory.CacheFactory) core.VerdictCache {
		return f.CreateVerdictCache()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register trusted sender checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetFraud().TrustedSenders, logger)
	}); err != nil {
		return nil, err
	}

	// Register fraud threshold
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetFraud().Threshold
	}); err != nil {
		return nil, err
	}

	// Register ensemble scorer
	if err := container.Provide(core.NewEnsembleScorer); err != nil {
		return nil, err
	}

	// Register predictor options
	if err := container.Provide(func(cfg *config.Config) core.PredictorOptions {
		cacheCfg := cfg.GetCache()
		return core.PredictorOptions{
			CacheEnabled:   cacheCfg.Enabled,
			CacheTTL:       cacheCfg.TTL,
			CacheOpTimeout: cacheCfg.OpTimeout,
		}
	}); err != nil {
		return nil, err
	}

	// Register predictor
	if err := container.Provide(core.NewPredictor); err != nil {
		return nil, err
	}

	// Register feedback service
	if err := container.Provide(core.NewFeedbackService); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(cfg *config.Config) httpserver.Options {
		return httpserver.Options{
			ListenAddress:  cfg.GetServer().ListenAddress,
			MaxContentSize: cfg.GetFraud().MaxContentSize,
		}
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(httpserver.New); err != nil {
		return nil, err
	}

	return container, nil
}
