package core

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// EnsembleScorer produces a single verdict from a feature set using a
// weighted rule set. The individual signal models are invoked for the
// verdict's model_predictions metadata only; they do not contribute to the
// final score until real artifacts ship with a documented fusion policy.
type EnsembleScorer struct {
	signals   []SignalModel
	threshold float64
	logger    *zap.Logger
	ready     bool
}

// NewEnsembleScorer creates an ensemble over the given signal models.
// threshold is the fraud decision boundary on the [0,1] score.
func NewEnsembleScorer(signals []SignalModel, threshold float64, logger *zap.Logger) *EnsembleScorer {
	if threshold <= 0 {
		threshold = 0.5
	}
	logger.Info("Initializing fraud detection ensemble",
		zap.Float64("threshold", threshold),
		zap.Int("signals", len(signals)),
		zap.String("model_version", ModelVersion))
	return &EnsembleScorer{
		signals:   signals,
		threshold: threshold,
		logger:    logger,
		ready:     true,
	}
}

// IsReady reports whether the scorer can serve verdicts. The rule-based
// path needs no external artifacts, so this is true once constructed.
func (e *EnsembleScorer) IsReady() bool {
	return e.ready
}

// Score computes a verdict from the feature set. It is a total function:
// a zero-value FeatureSet yields score 0 and a "none" verdict.
func (e *EnsembleScorer) Score(features *FeatureSet) *Verdict {
	if features == nil {
		features = &FeatureSet{}
	}

	score := 0.0
	var indicators []string

	if features.HasLinks {
		score += 0.25
		indicators = append(indicators, "Contains suspicious links")
	}
	if features.HasUrgentWords {
		score += 0.15 * math.Min(float64(features.UrgentWordCount)/3, 1.0)
		indicators = append(indicators, fmt.Sprintf("Uses urgent language (%d urgent words)", features.UrgentWordCount))
	}
	if features.HasKYCKeywords {
		score += 0.20
		indicators = append(indicators, "References KYC/regulatory requirements")
	}
	if features.SpecialCharRatio > 0.15 {
		score += 0.10
		indicators = append(indicators, "Excessive special characters")
	}
	if features.CapitalRatio > 0.5 {
		score += 0.10
		indicators = append(indicators, "Excessive capital letters")
	}
	if features.HasPhoneNumber && features.HasUrgentWords {
		score += 0.15
		indicators = append(indicators, "Contains phone number with urgent language")
	}
	if features.HasBankNames && features.HasUrgentWords && features.HasLinks {
		score += 0.20
		indicators = append(indicators, "Combines bank reference, urgency, and links")
	}

	score = clamp01(score)
	isFraud := score >= e.threshold

	// Distance from the decision boundary, scaled and clamped.
	confidence := math.Abs(score-0.5) * 2
	confidence = math.Max(0.6, math.Min(confidence, 0.95))

	var explanation string
	if isFraud {
		explanation = fmt.Sprintf("Message flagged as fraudulent (score: %.2f). Indicators: %s",
			score, strings.Join(indicators, ", "))
	} else {
		explanation = fmt.Sprintf("Message appears legitimate (score: %.2f)", score)
	}

	predictions := map[string]any{
		"rule_based_model": map[string]any{
			"fraud_score": score,
			"is_fraud":    isFraud,
			"indicators":  indicators,
		},
		"feature_analysis": map[string]any{
			"has_links":          features.HasLinks,
			"has_urgent_words":   features.HasUrgentWords,
			"has_kyc_keywords":   features.HasKYCKeywords,
			"special_char_ratio": features.SpecialCharRatio,
		},
	}
	for _, signal := range e.signals {
		predictions[signal.Name()] = e.safePredict(signal, features)
	}

	return &Verdict{
		IsFraud:          isFraud,
		FraudScore:       score,
		FraudType:        e.fraudType(features, score),
		Confidence:       confidence,
		ModelPredictions: predictions,
		Explanation:      explanation,
		ModelVersion:     ModelVersion,
	}
}

// safePredict invokes a signal model, converting any unexpected panic into
// a zero result so one broken signal cannot abort the whole verdict.
func (e *EnsembleScorer) safePredict(signal SignalModel, features *FeatureSet) (result SignalResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Signal model panicked, contributing zero score",
				zap.String("signal", signal.Name()),
				zap.Any("panic", r))
			result = SignalResult{}
		}
	}()
	return signal.Predict(features.Content, features)
}

// fraudType classifies the fraud. The priority order of the checks is a
// deliberate tie-break and must not be reordered.
func (e *EnsembleScorer) fraudType(features *FeatureSet, score float64) FraudType {
	if score < e.threshold {
		return FraudTypeNone
	}
	switch {
	case features.HasKYCKeywords && features.HasUrgentWords:
		return FraudTypeKYC
	case features.HasLinks && features.HasUrgentWords:
		return FraudTypePhishing
	case features.HasPhoneNumber && features.HasUrgentWords:
		return FraudTypeVishing
	case features.HasUrgentWords:
		return FraudTypeUrgencyScam
	default:
		return FraudTypeGeneric
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
