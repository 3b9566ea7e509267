package models

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// MetadataModel is the structured-feature signal: it scores the feature set
// rather than the raw text. The artifact slot is a gradient-boosted tree
// model over the feature vector.
type MetadataModel struct {
	modelPath string
	state     core.LoadState
	logger    *zap.Logger
}

// NewMetadataModel probes modelPath for a trained artifact. The boosted
// tree ships as a single model file under the artifact directory.
func NewMetadataModel(modelPath string, logger *zap.Logger) *MetadataModel {
	m := &MetadataModel{
		modelPath: modelPath,
		state:     core.StateUnloaded,
		logger:    logger,
	}
	if _, err := os.Stat(filepath.Join(modelPath, "model.bin")); err == nil {
		logger.Warn("Metadata model artifact present but no loader is implemented, using fallback",
			zap.String("path", modelPath))
	} else {
		logger.Warn("Metadata model artifact not found, using fallback",
			zap.String("path", modelPath))
	}
	m.state = core.StateFallbackOnly
	return m
}

// Name implements core.SignalModel.
func (m *MetadataModel) Name() string { return "metadata" }

// State implements core.SignalModel.
func (m *MetadataModel) State() core.LoadState { return m.state }

// Predict takes a weighted sum over the structural features, capped at
// 1.0. Confidence is fixed at 0.75: structured features are the most
// reliable of the four fallbacks.
func (m *MetadataModel) Predict(_ string, features *core.FeatureSet) core.SignalResult {
	if features == nil {
		features = &core.FeatureSet{}
	}

	score := 0.0

	if features.HasLinks {
		score += 0.2
		score += float64(features.LinkCount) * 0.1
	}
	if features.HasPhoneNumber {
		score += 0.15
	}
	if features.SpecialCharRatio > 0.15 {
		score += 0.15
	}
	if features.CapitalRatio > 0.5 {
		score += 0.1
	}
	if features.HasUrgentWords {
		score += 0.2
	}
	if features.HasKYCKeywords {
		score += 0.15
	}

	if score > 1.0 {
		score = 1.0
	}

	return core.SignalResult{Score: score, Confidence: 0.75}
}
