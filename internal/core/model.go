package core

import (
	"time"
)

// ModelVersion identifies the current revision of the scoring logic. It is
// stamped on every verdict so cached results can be traced back to the rules
// that produced them.
const ModelVersion = "1.0.0-mvp"

// FraudType classifies the kind of fraud detected in a message.
type FraudType string

const (
	FraudTypeNone          FraudType = "none"
	FraudTypeKYC           FraudType = "kyc_fraud"
	FraudTypePhishing      FraudType = "phishing"
	FraudTypeVishing       FraudType = "vishing"
	FraudTypeUrgencyScam   FraudType = "urgency_scam"
	FraudTypeImpersonation FraudType = "impersonation"
	FraudTypeGeneric       FraudType = "generic_fraud"
)

// LoadState describes the artifact lifecycle of a signal model.
type LoadState int

const (
	// StateUnloaded means no artifact probe has happened yet.
	StateUnloaded LoadState = iota
	// StateLoaded means a trained artifact is loaded and serving.
	StateLoaded
	// StateFallbackOnly means the model serves its deterministic heuristic
	// because no artifact could be loaded. This state is terminal.
	StateFallbackOnly
)

// String returns a readable name for the load state.
func (s LoadState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFallbackOnly:
		return "fallback_only"
	default:
		return "unloaded"
	}
}

// FeatureSet holds the structural signals extracted from a message by an
// upstream service. Every field's zero value is its default, so a partially
// populated set is always safe to score.
type FeatureSet struct {
	Content          string   `json:"content"`
	SenderHeader     string   `json:"sender_header"`
	MessageLength    int      `json:"message_length"`
	HasLinks         bool     `json:"has_links"`
	LinkCount        int      `json:"link_count"`
	ExtractedURLs    []string `json:"extracted_urls,omitempty"`
	HasPhoneNumber   bool     `json:"has_phone_number"`
	PhoneNumberCount int      `json:"phone_number_count"`
	HasUrgentWords   bool     `json:"has_urgent_words"`
	UrgentWordCount  int      `json:"urgent_word_count"`
	SpecialCharRatio float64  `json:"special_char_ratio"`
	CapitalRatio     float64  `json:"capital_ratio"`
	NumberRatio      float64  `json:"number_ratio"`
	HasKYCKeywords   bool     `json:"has_kyc_keywords"`
	HasBankNames     bool     `json:"has_bank_names"`
}

// InferenceRequest is the payload the transport layer hands to the predictor.
type InferenceRequest struct {
	Content      string     `json:"content"`
	SenderHeader string     `json:"sender_header"`
	Features     FeatureSet `json:"features"`
}

// Verdict is the result of scoring a single message. It is immutable once
// produced; cache replays return the stored verdict unchanged.
type Verdict struct {
	IsFraud          bool           `json:"is_fraud"`
	FraudScore       float64        `json:"fraud_score"`
	FraudType        FraudType      `json:"fraud_type"`
	Confidence       float64        `json:"confidence"`
	ModelPredictions map[string]any `json:"model_predictions"`
	Explanation      string         `json:"explanation"`
	InferenceTimeMs  int64          `json:"inference_time_ms"`
	ModelVersion     string         `json:"model_version"`
}

// CacheEntry is a verdict stored under its content-addressed key.
type CacheEntry struct {
	Key       string
	Verdict   *Verdict
	ExpiresAt time.Time
}
