package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Feedback is a report on a previous prediction: whether it was right, and
// if not, what the actual label was.
type Feedback struct {
	VerificationID string `json:"verification_id"`
	IsCorrect      bool   `json:"is_correct"`
	ActualLabel    string `json:"actual_label,omitempty"`
	FeedbackText   string `json:"feedback_text,omitempty"`
	UserID         string `json:"user_id,omitempty"`
}

// FeedbackAck acknowledges a submitted feedback report.
type FeedbackAck struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FeedbackID string `json:"feedback_id"`
}

// FeedbackStats summarizes accumulated feedback.
type FeedbackStats struct {
	TotalFeedback  int64      `json:"total_feedback"`
	FalsePositives int64      `json:"false_positives"`
	FalseNegatives int64      `json:"false_negatives"`
	Accuracy       float64    `json:"accuracy"`
	LastUpdated    *time.Time `json:"last_updated"`
}

// ErrMissingVerificationID is returned when feedback omits the prediction
// it refers to.
var ErrMissingVerificationID = errors.New("feedback requires a verification_id")

// FeedbackService accepts prediction feedback. It is a write-only path: the
// reports are acknowledged and counted, never fed back into scoring.
type FeedbackService struct {
	logger *zap.Logger

	mu          sync.Mutex
	total       int64
	correct     int64
	falsePos    int64
	falseNeg    int64
	lastUpdated time.Time
}

// NewFeedbackService creates a feedback service.
func NewFeedbackService(logger *zap.Logger) *FeedbackService {
	return &FeedbackService{logger: logger}
}

// Submit records a feedback report and returns an acknowledgement carrying
// a generated feedback identifier.
func (s *FeedbackService) Submit(fb *Feedback) (*FeedbackAck, error) {
	if fb == nil || fb.VerificationID == "" {
		return nil, ErrMissingVerificationID
	}

	feedbackID := "fb_" + uuid.NewString()

	s.logger.Info("Received prediction feedback",
		zap.String("verification_id", fb.VerificationID),
		zap.String("feedback_id", feedbackID),
		zap.Bool("is_correct", fb.IsCorrect))

	s.mu.Lock()
	s.total++
	if fb.IsCorrect {
		s.correct++
	} else {
		switch fb.ActualLabel {
		case "legitimate":
			// Predicted fraud, actually legitimate.
			s.falsePos++
		case "fraud":
			s.falseNeg++
		}
	}
	s.lastUpdated = time.Now()
	s.mu.Unlock()

	if !fb.IsCorrect {
		s.logger.Warn("Incorrect prediction reported",
			zap.String("verification_id", fb.VerificationID),
			zap.String("actual_label", fb.ActualLabel))
	}

	return &FeedbackAck{
		Success:    true,
		Message:    "Feedback received successfully. Thank you for helping improve our models!",
		FeedbackID: feedbackID,
	}, nil
}

// Stats returns the accumulated feedback counters.
func (s *FeedbackService) Stats() FeedbackStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := FeedbackStats{
		TotalFeedback:  s.total,
		FalsePositives: s.falsePos,
		FalseNegatives: s.falseNeg,
	}
	if s.total > 0 {
		stats.Accuracy = float64(s.correct) / float64(s.total)
		t := s.lastUpdated
		stats.LastUpdated = &t
	}
	return stats
}
