package models

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// typeLabels fixes the enumeration order of the classifier's labels. Ties
// in the argmax resolve to the earliest label in this order.
var typeLabels = []core.FraudType{
	core.FraudTypeKYC,
	core.FraudTypePhishing,
	core.FraudTypeVishing,
	core.FraudTypeUrgencyScam,
	core.FraudTypeImpersonation,
}

// TypeClassifierModel is the multi-class fraud-type signal over free text.
// The artifact slot is a fine-tuned RoBERTa classifier.
type TypeClassifierModel struct {
	modelPath string
	state     core.LoadState
	logger    *zap.Logger
}

// NewTypeClassifierModel probes modelPath for a trained artifact.
func NewTypeClassifierModel(modelPath string, logger *zap.Logger) *TypeClassifierModel {
	m := &TypeClassifierModel{
		modelPath: modelPath,
		state:     core.StateUnloaded,
		logger:    logger,
	}
	if _, err := os.Stat(modelPath); err == nil {
		logger.Warn("Type classifier artifact present but no loader is implemented, using fallback",
			zap.String("path", modelPath))
	} else {
		logger.Warn("Type classifier artifact not found, using fallback",
			zap.String("path", modelPath))
	}
	m.state = core.StateFallbackOnly
	return m
}

// Name implements core.SignalModel.
func (m *TypeClassifierModel) Name() string { return "type_classifier" }

// State implements core.SignalModel.
func (m *TypeClassifierModel) State() core.LoadState { return m.state }

// Predict accumulates a score per fraud-type label from keyword groups and
// returns the argmax label. Confidence is fixed at 0.65 for the fallback.
func (m *TypeClassifierModel) Predict(content string, _ *core.FeatureSet) core.SignalResult {
	lower := strings.ToLower(content)

	scores := make(map[core.FraudType]float64, len(typeLabels))
	for _, label := range typeLabels {
		scores[label] = 0.0
	}

	if strings.Contains(lower, "kyc") || strings.Contains(lower, "know your customer") {
		scores[core.FraudTypeKYC] += 0.4
	}
	if strings.Contains(lower, "http") || strings.Contains(lower, "click") || strings.Contains(lower, "link") {
		scores[core.FraudTypePhishing] += 0.3
	}
	if containsAny(lower, "call", "phone", "contact") {
		scores[core.FraudTypeVishing] += 0.2
	}
	if containsAny(lower, "urgent", "immediately", "now", "expire") {
		scores[core.FraudTypeUrgencyScam] += 0.3
	}
	if containsAny(lower, "bank", "rbi", "official") {
		scores[core.FraudTypeImpersonation] += 0.2
	}

	best := typeLabels[0]
	for _, label := range typeLabels[1:] {
		if scores[label] > scores[best] {
			best = label
		}
	}

	return core.SignalResult{
		Score:      scores[best],
		Confidence: 0.65,
		Label:      best,
		TypeScores: scores,
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
