package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/complyport/compliance-engine/pkg/config"
	handlers "github.com/complyport/compliance-engine/pkg/handlers/http"
)

type Handlers struct {
	GenerateDocument handlers.Handler
	GenerateBatch    handlers.Handler
	GetJob           handlers.Handler
	GenerateContent  handlers.Handler
	CheckGuardrails  handlers.Handler
}

type Server struct {
	app    *fiber.App
	cfg    config.ServerConfig
	logger *logrus.Logger
}

func New(cfg config.ServerConfig, logger *logrus.Logger, h Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "compliance-engine",
		DisableStartupMessage: true,
	})

	app.Use(requestIDMiddleware())

	v1 := app.Group("/api/v1")
	v1.Post("/documents/generate", h.GenerateDocument.Handle)
	v1.Post("/documents/batch", h.GenerateBatch.Handle)
	v1.Get("/jobs/:id", h.GetJob.Handle)
	v1.Post("/content/generate", h.GenerateContent.Handle)
	v1.Post("/guardrails/check", h.CheckGuardrails.Handle)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return &Server{
		app:    app,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.logger.WithField("addr", addr).Info("starting api server")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}
