package models

import (
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// SequencePatternModel is the structural-scan signal over free text. The
// artifact slot is a BiLSTM with attention over token sequences.
type SequencePatternModel struct {
	modelPath string
	state     core.LoadState
	logger    *zap.Logger
}

// NewSequencePatternModel probes modelPath for a trained artifact.
func NewSequencePatternModel(modelPath string, logger *zap.Logger) *SequencePatternModel {
	m := &SequencePatternModel{
		modelPath: modelPath,
		state:     core.StateUnloaded,
		logger:    logger,
	}
	if _, err := os.Stat(modelPath); err == nil {
		logger.Warn("Sequence model artifact present but no loader is implemented, using fallback",
			zap.String("path", modelPath))
	} else {
		logger.Warn("Sequence model artifact not found, using fallback",
			zap.String("path", modelPath))
	}
	m.state = core.StateFallbackOnly
	return m
}

// Name implements core.SignalModel.
func (m *SequencePatternModel) Name() string { return "sequence_pattern" }

// State implements core.SignalModel.
func (m *SequencePatternModel) State() core.LoadState { return m.state }

// Predict scores structural patterns: short messages carrying a link,
// heavy special-character use, and repetition markers. Confidence is fixed
// at 0.6 for the fallback path.
func (m *SequencePatternModel) Predict(content string, _ *core.FeatureSet) core.SignalResult {
	lower := strings.ToLower(content)
	words := strings.Fields(content)

	score := 0.0

	if len(words) < 20 && strings.Contains(lower, "http") {
		score += 0.3
	}

	// Guard the ratio against empty text.
	runes := []rune(content)
	if len(runes) > 0 {
		special := 0
		for _, r := range runes {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
				special++
			}
		}
		if float64(special)/float64(len(runes)) > 0.15 {
			score += 0.2
		}
	}

	if strings.Contains(content, "!!!") || strings.Contains(content, "...") {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}

	return core.SignalResult{Score: score, Confidence: 0.6}
}
