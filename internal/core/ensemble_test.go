package core

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestEnsemble(signals ...SignalModel) *EnsembleScorer {
	return NewEnsembleScorer(signals, 0.5, zap.NewNop())
}

func TestScoreEmptyFeatureSet(t *testing.T) {
	e := newTestEnsemble()

	v := e.Score(&FeatureSet{})
	if v.FraudScore != 0 {
		t.Fatalf("expected score 0 for empty feature set, got %f", v.FraudScore)
	}
	if v.IsFraud {
		t.Fatal("expected legitimate verdict for empty feature set")
	}
	if v.FraudType != FraudTypeNone {
		t.Fatalf("expected fraud type none, got %s", v.FraudType)
	}
	if v.Confidence < 0.6 || v.Confidence > 0.95 {
		t.Fatalf("confidence %f outside [0.6, 0.95]", v.Confidence)
	}
	if v.ModelVersion != ModelVersion {
		t.Fatalf("expected model version %q, got %q", ModelVersion, v.ModelVersion)
	}
}

func TestScoreNilFeatureSet(t *testing.T) {
	e := newTestEnsemble()

	v := e.Score(nil)
	if v.FraudScore != 0 || v.IsFraud {
		t.Fatalf("expected zero verdict for nil feature set, got score %f", v.FraudScore)
	}
}

func TestScoreKYCPhishingScenario(t *testing.T) {
	e := newTestEnsemble()

	// URGENT! Your account will be blocked. Update KYC now: http://fake-bank.com
	features := &FeatureSet{
		Content:          "URGENT! Your account will be blocked. Update KYC now: http://fake-bank.com",
		HasLinks:         true,
		LinkCount:        1,
		HasUrgentWords:   true,
		UrgentWordCount:  3,
		HasKYCKeywords:   true,
		HasBankNames:     true,
		SpecialCharRatio: 0.05,
		CapitalRatio:     0.15,
	}

	v := e.Score(features)
	if !v.IsFraud {
		t.Fatalf("expected fraud verdict, got score %f", v.FraudScore)
	}
	if v.FraudScore < 0.5 {
		t.Fatalf("expected score >= 0.5, got %f", v.FraudScore)
	}
	// KYC + urgency outranks phishing and urgency_scam in the priority order.
	if v.FraudType != FraudTypeKYC {
		t.Fatalf("expected kyc_fraud, got %s", v.FraudType)
	}
	if v.Confidence <= 0.5 {
		t.Fatalf("expected confidence > 0.5, got %f", v.Confidence)
	}
	if !strings.Contains(v.Explanation, "flagged as fraudulent") {
		t.Fatalf("unexpected explanation: %q", v.Explanation)
	}
	if !strings.Contains(v.Explanation, "Contains suspicious links") {
		t.Fatalf("explanation missing link indicator: %q", v.Explanation)
	}
}

func TestScoreLegitimateTransaction(t *testing.T) {
	e := newTestEnsemble()

	features := &FeatureSet{
		Content:          "Your transaction of Rs. 5000 is successful. Thank you for banking with us.",
		HasBankNames:     true,
		SpecialCharRatio: 0.02,
		CapitalRatio:     0.05,
	}

	v := e.Score(features)
	if v.IsFraud {
		t.Fatalf("expected legitimate verdict, got score %f", v.FraudScore)
	}
	if v.FraudScore >= 0.5 {
		t.Fatalf("expected score < 0.5, got %f", v.FraudScore)
	}
	if v.FraudType != FraudTypeNone {
		t.Fatalf("expected fraud type none, got %s", v.FraudType)
	}
	if !strings.Contains(v.Explanation, "appears legitimate") {
		t.Fatalf("unexpected explanation: %q", v.Explanation)
	}
}

func TestScoreWeights(t *testing.T) {
	e := newTestEnsemble()

	tests := []struct {
		name     string
		features FeatureSet
		want     float64
	}{
		{"links only", FeatureSet{HasLinks: true}, 0.25},
		{"kyc only", FeatureSet{HasKYCKeywords: true}, 0.20},
		{"special chars", FeatureSet{SpecialCharRatio: 0.16}, 0.10},
		{"capitals", FeatureSet{CapitalRatio: 0.51}, 0.10},
		{"urgency capped at 3 words", FeatureSet{HasUrgentWords: true, UrgentWordCount: 9}, 0.15},
		{"urgency one word", FeatureSet{HasUrgentWords: true, UrgentWordCount: 1}, 0.05},
		{"phone with urgency", FeatureSet{HasPhoneNumber: true, HasUrgentWords: true, UrgentWordCount: 3}, 0.15 + 0.15},
		{"phone without urgency", FeatureSet{HasPhoneNumber: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Score(&tt.features)
			if diff := v.FraudScore - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected score %f, got %f", tt.want, v.FraudScore)
			}
		})
	}
}

func TestScoreClampedToOne(t *testing.T) {
	e := newTestEnsemble()

	features := &FeatureSet{
		HasLinks:         true,
		HasUrgentWords:   true,
		UrgentWordCount:  10,
		HasKYCKeywords:   true,
		HasBankNames:     true,
		HasPhoneNumber:   true,
		SpecialCharRatio: 0.9,
		CapitalRatio:     0.9,
	}

	v := e.Score(features)
	if v.FraudScore > 1.0 {
		t.Fatalf("score not clamped: %f", v.FraudScore)
	}
	if v.Confidence > 0.95 {
		t.Fatalf("confidence not clamped: %f", v.Confidence)
	}
}

func TestFraudTypeBoundaryInclusive(t *testing.T) {
	e := newTestEnsemble()

	// links (0.25) + kyc (0.20) + special (0.10) + capitals (0.10) = 0.65;
	// without urgency this lands on generic_fraud.
	features := &FeatureSet{
		HasLinks:         true,
		HasKYCKeywords:   true,
		SpecialCharRatio: 0.2,
		CapitalRatio:     0.6,
	}

	v := e.Score(features)
	if !v.IsFraud {
		t.Fatalf("expected fraud at score %f", v.FraudScore)
	}
	if v.FraudType != FraudTypeGeneric {
		t.Fatalf("expected generic_fraud without urgency, got %s", v.FraudType)
	}
}

func TestFraudTypePriorityOrder(t *testing.T) {
	e := newTestEnsemble()

	// All feature sets below carry enough weight to cross the threshold;
	// the type must follow the documented priority order.
	base := FeatureSet{
		HasUrgentWords:   true,
		UrgentWordCount:  3,
		SpecialCharRatio: 0.2,
		CapitalRatio:     0.6,
		HasKYCKeywords:   true,
	}

	tests := []struct {
		name   string
		mutate func(*FeatureSet)
		want   FraudType
	}{
		{"kyc wins over phishing", func(f *FeatureSet) { f.HasLinks = true }, FraudTypeKYC},
		{"phishing when no kyc", func(f *FeatureSet) { f.HasKYCKeywords = false; f.HasLinks = true }, FraudTypePhishing},
		{"vishing when no links", func(f *FeatureSet) { f.HasKYCKeywords = false; f.HasPhoneNumber = true }, FraudTypeVishing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := base
			tt.mutate(&features)
			v := e.Score(&features)
			if !v.IsFraud {
				t.Fatalf("scenario did not cross threshold, score %f", v.FraudScore)
			}
			if v.FraudType != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, v.FraudType)
			}
		})
	}
}

func TestFraudTypeUrgencyScamAtLowerThreshold(t *testing.T) {
	// Urgency alone cannot reach 0.5 under the current weights, so exercise
	// the urgency_scam branch with a lower decision threshold.
	e := NewEnsembleScorer(nil, 0.3, zap.NewNop())

	v := e.Score(&FeatureSet{
		HasUrgentWords:   true,
		UrgentWordCount:  3,
		SpecialCharRatio: 0.2,
		CapitalRatio:     0.6,
	})
	if !v.IsFraud {
		t.Fatalf("expected fraud at lowered threshold, score %f", v.FraudScore)
	}
	if v.FraudType != FraudTypeUrgencyScam {
		t.Fatalf("expected urgency_scam, got %s", v.FraudType)
	}
}

// panickingSignal always panics, to exercise the ensemble boundary.
type panickingSignal struct{}

func (panickingSignal) Name() string     { return "broken" }
func (panickingSignal) State() LoadState { return StateFallbackOnly }
func (panickingSignal) Predict(string, *FeatureSet) SignalResult {
	panic("boom")
}

func TestSignalPanicContributesZero(t *testing.T) {
	e := newTestEnsemble(panickingSignal{})

	v := e.Score(&FeatureSet{HasLinks: true})
	if v.FraudScore != 0.25 {
		t.Fatalf("panicking signal altered the verdict: %f", v.FraudScore)
	}

	broken, ok := v.ModelPredictions["broken"].(SignalResult)
	if !ok {
		t.Fatal("expected broken signal metadata to be present")
	}
	if broken.Score != 0 || broken.Confidence != 0 {
		t.Fatalf("expected zero result from panicking signal, got %+v", broken)
	}
}

func TestModelPredictionsMetadata(t *testing.T) {
	e := newTestEnsemble()

	v := e.Score(&FeatureSet{HasLinks: true})
	if _, ok := v.ModelPredictions["rule_based_model"]; !ok {
		t.Fatal("missing rule_based_model breakdown")
	}
	if _, ok := v.ModelPredictions["feature_analysis"]; !ok {
		t.Fatal("missing feature_analysis echo")
	}
}
