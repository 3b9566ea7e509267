package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/config"
	"github.com/mikey/fraud-scorer/internal/core"
	"github.com/mikey/fraud-scorer/internal/models"
)

// ModelFactory creates the signal models behind the ensemble.
type ModelFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger) *ModelFactory {
	return &ModelFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSignalModels constructs the four signal models, probing each
// artifact path once at process start.
func (f *ModelFactory) CreateSignalModels() []core.SignalModel {
	modelsCfg := f.cfg.GetModels()

	return []core.SignalModel{
		models.NewLexicalModel(modelsCfg.DistilBERTPath, f.logger),
		models.NewSequencePatternModel(modelsCfg.LSTMPath, f.logger),
		models.NewTypeClassifierModel(modelsCfg.RoBERTaPath, f.logger),
		models.NewMetadataModel(modelsCfg.XGBoostPath, f.logger),
	}
}
