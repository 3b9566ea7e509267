// Package metrics provides Prometheus instrumentation for the fraud scorer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PredictionsTotal counts verdicts by outcome and fraud type.
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraud_scorer",
			Name:      "predictions_total",
			Help:      "Total predictions served, by verdict and fraud type.",
		},
		[]string{"verdict", "fraud_type"},
	)

	// CacheLookupsTotal counts verdict cache lookups by outcome.
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraud_scorer",
			Name:      "cache_lookups_total",
			Help:      "Total verdict cache lookups, by outcome (hit, miss, error).",
		},
		[]string{"outcome"},
	)

	// InferenceDuration observes the latency of the scoring call itself,
	// excluding transport and cache round-trips.
	InferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fraud_scorer",
			Name:      "inference_duration_seconds",
			Help:      "Scoring call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// FeedbackTotal counts feedback submissions by reported correctness.
	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraud_scorer",
			Name:      "feedback_total",
			Help:      "Total feedback submissions, by reported correctness.",
		},
		[]string{"correct"},
	)
)

func init() {
	prometheus.MustRegister(
		PredictionsTotal,
		CacheLookupsTotal,
		InferenceDuration,
		FeedbackTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler for the /metrics
// endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
