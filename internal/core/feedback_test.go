package core

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestFeedbackSubmitRequiresVerificationID(t *testing.T) {
	s := NewFeedbackService(zap.NewNop())

	if _, err := s.Submit(nil); err != ErrMissingVerificationID {
		t.Fatalf("nil feedback: expected ErrMissingVerificationID, got %v", err)
	}
	if _, err := s.Submit(&Feedback{IsCorrect: true}); err != ErrMissingVerificationID {
		t.Fatalf("empty id: expected ErrMissingVerificationID, got %v", err)
	}
}

func TestFeedbackSubmitAck(t *testing.T) {
	s := NewFeedbackService(zap.NewNop())

	ack, err := s.Submit(&Feedback{VerificationID: "ver-1", IsCorrect: true})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !ack.Success {
		t.Fatal("expected success acknowledgement")
	}
	if !strings.HasPrefix(ack.FeedbackID, "fb_") {
		t.Fatalf("unexpected feedback id: %s", ack.FeedbackID)
	}

	second, err := s.Submit(&Feedback{VerificationID: "ver-2", IsCorrect: true})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if second.FeedbackID == ack.FeedbackID {
		t.Fatal("feedback ids must be unique")
	}
}

func TestFeedbackStats(t *testing.T) {
	s := NewFeedbackService(zap.NewNop())

	if got := s.Stats(); got.TotalFeedback != 0 || got.Accuracy != 0 || got.LastUpdated != nil {
		t.Fatalf("expected empty stats, got %+v", got)
	}

	reports := []*Feedback{
		{VerificationID: "v1", IsCorrect: true},
		{VerificationID: "v2", IsCorrect: true},
		{VerificationID: "v3", IsCorrect: false, ActualLabel: "legitimate"},
		{VerificationID: "v4", IsCorrect: false, ActualLabel: "fraud"},
	}
	for _, fb := range reports {
		if _, err := s.Submit(fb); err != nil {
			t.Fatalf("submit %s failed: %v", fb.VerificationID, err)
		}
	}

	got := s.Stats()
	if got.TotalFeedback != 4 {
		t.Fatalf("expected 4 reports, got %d", got.TotalFeedback)
	}
	if got.FalsePositives != 1 || got.FalseNegatives != 1 {
		t.Fatalf("expected 1 false positive and 1 false negative, got %+v", got)
	}
	if got.Accuracy != 0.5 {
		t.Fatalf("expected accuracy 0.5, got %f", got.Accuracy)
	}
	if got.LastUpdated == nil {
		t.Fatal("expected last updated timestamp")
	}
}
