package httpserver

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
	"github.com/mikey/fraud-scorer/internal/metrics"
)

func (s *Server) handleRoot(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "fraud-scorer",
		"version": s.opts.Version,
		"status":  "running",
	})
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "healthy",
		"version":       s.opts.Version,
		"models_loaded": s.predictor.HealthCheck(),
	})
}

// handleReady gates readiness on the scoring engine only. Cache
// reachability is reported as an informational field, never as a failure.
func (s *Server) handleReady(c fiber.Ctx) error {
	modelsReady := s.predictor.HealthCheck()
	cacheReady := s.predictor.CacheHealthCheck(c.Context())

	cacheStatus := "disconnected"
	if cacheReady {
		cacheStatus = "connected"
	}

	if !modelsReady {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"models": "not loaded",
			"cache":  cacheStatus,
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
		"models": "loaded",
		"cache":  cacheStatus,
	})
}

func (s *Server) handlePredict(c fiber.Ctx) error {
	var req core.InferenceRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid request body",
			"message": err.Error(),
		})
	}

	req.Content = s.textProc.ProcessText(req.Content, s.opts.MaxContentSize)
	req.Features.Content = s.textProc.ProcessText(req.Features.Content, s.opts.MaxContentSize)

	s.logger.Info("Received prediction request", zap.String("sender", req.SenderHeader))

	verdict, err := s.predictor.Predict(c.Context(), &req)
	if err != nil {
		s.logger.Error("Prediction failed",
			zap.String("sender", req.SenderHeader), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "prediction failed",
			"message": "internal error",
		})
	}

	verdictLabel := "legitimate"
	if verdict.IsFraud {
		verdictLabel = "fraud"
	}
	metrics.PredictionsTotal.WithLabelValues(verdictLabel, string(verdict.FraudType)).Inc()

	return c.JSON(verdict)
}

func (s *Server) handleFeedback(c fiber.Ctx) error {
	var fb core.Feedback
	if err := json.Unmarshal(c.Body(), &fb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid request body",
			"message": err.Error(),
		})
	}

	ack, err := s.feedback.Submit(&fb)
	if err != nil {
		if errors.Is(err, core.ErrMissingVerificationID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "invalid feedback",
				"message": err.Error(),
			})
		}
		s.logger.Error("Feedback submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "feedback failed",
			"message": "internal error",
		})
	}

	correctLabel := "false"
	if fb.IsCorrect {
		correctLabel = "true"
	}
	metrics.FeedbackTotal.WithLabelValues(correctLabel).Inc()

	return c.JSON(ack)
}

func (s *Server) handleFeedbackStats(c fiber.Ctx) error {
	return c.JSON(s.feedback.Stats())
}
