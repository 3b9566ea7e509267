// Package httpserver is the transport adapter: it exposes the prediction
// pipeline, the feedback write path, health probes and metrics over HTTP.
package httpserver

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/mikey/fraud-scorer/internal/core"
	"github.com/mikey/fraud-scorer/internal/metrics"
	"github.com/mikey/fraud-scorer/internal/utils"
)

// Options configures the HTTP server.
type Options struct {
	ListenAddress  string
	MaxContentSize int
	Version        string
}

// Server serves the scoring API.
type Server struct {
	app       *fiber.App
	logger    *zap.Logger
	predictor *core.Predictor
	feedback  *core.FeedbackService
	textProc  *utils.TextProcessor
	opts      Options
}

// New creates the server and registers its routes.
func New(
	predictor *core.Predictor,
	feedback *core.FeedbackService,
	textProc *utils.TextProcessor,
	logger *zap.Logger,
	opts Options,
) *Server {
	if opts.Version == "" {
		opts.Version = core.ModelVersion
	}

	app := fiber.New(fiber.Config{
		AppName: "fraud-scorer",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			logger.Error("Request failed", zap.Int("status", code), zap.Error(err))
			return c.Status(code).JSON(fiber.Map{
				"error":   "request failed",
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())

	s := &Server{
		app:       app,
		logger:    logger,
		predictor: predictor,
		feedback:  feedback,
		textProc:  textProc,
		opts:      opts,
	}

	app.Get("/", s.handleRoot)
	app.Get("/health", s.handleHealth)
	app.Get("/ready", s.handleReady)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Post("/api/v1/predict", s.handlePredict)
	app.Post("/api/v1/feedback", s.handleFeedback)
	app.Get("/api/v1/feedback/stats", s.handleFeedbackStats)

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.opts.ListenAddress))
	go func() {
		if err := s.app.Listen(s.opts.ListenAddress); err != nil {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
