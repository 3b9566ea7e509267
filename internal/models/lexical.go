// Package models holds the four signal models behind the ensemble. Each one
// reserves a slot for a trained artifact (probed for existence at startup)
// and serves a deterministic fallback heuristic until a loader ships. The
// call shape is stable so a real artifact can swap in without touching the
// ensemble or the transport layer.
package models

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
)

// lexicalKeywords is the fixed keyword set of the fallback. Each keyword
// present in the text adds 0.15 to the score.
var lexicalKeywords = []string{"urgent", "blocked", "suspended", "kyc", "verify", "click", "link"}

// LexicalModel is the keyword-scan signal over free text. The artifact slot
// is a fine-tuned DistilBERT sequence classifier.
type LexicalModel struct {
	modelPath string
	state     core.LoadState
	logger    *zap.Logger
}

// NewLexicalModel probes modelPath for a trained artifact. Loading is not
// implemented, so the model always ends up serving its fallback.
func NewLexicalModel(modelPath string, logger *zap.Logger) *LexicalModel {
	m := &LexicalModel{
		modelPath: modelPath,
		state:     core.StateUnloaded,
		logger:    logger,
	}
	if _, err := os.Stat(modelPath); err == nil {
		logger.Warn("Lexical model artifact present but no loader is implemented, using fallback",
			zap.String("path", modelPath))
	} else {
		logger.Warn("Lexical model artifact not found, using fallback",
			zap.String("path", modelPath))
	}
	m.state = core.StateFallbackOnly
	return m
}

// Name implements core.SignalModel.
func (m *LexicalModel) Name() string { return "lexical" }

// State implements core.SignalModel.
func (m *LexicalModel) State() core.LoadState { return m.state }

// Predict scores the text by keyword presence, 0.15 per keyword, capped
// at 1.0. Confidence is fixed at 0.7 for the fallback path.
func (m *LexicalModel) Predict(content string, _ *core.FeatureSet) core.SignalResult {
	lower := strings.ToLower(content)

	score := 0.0
	for _, keyword := range lexicalKeywords {
		if strings.Contains(lower, keyword) {
			score += 0.15
		}
	}
	if score > 1.0 {
		score = 1.0
	}

	return core.SignalResult{Score: score, Confidence: 0.7}
}
