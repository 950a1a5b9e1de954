package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/generation"
)

type generateContentHandler struct {
	logger       *logrus.Logger
	orchestrator *generation.Orchestrator
}

func NewGenerateContentHandler(logger *logrus.Logger, orchestrator *generation.Orchestrator) Handler {
	return &generateContentHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (h *generateContentHandler) Handle(c *fiber.Ctx) error {
	var req domain.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
	}
	if req.TargetProvider == "" {
		req.TargetProvider = domain.ProviderAuto
	}
	req.CallerIP = c.IP()

	result, err := h.orchestrator.GenerateContent(c.Context(), req)
	if err != nil {
		return respondGenerationError(c, h.logger, err)
	}
	if result.Blocked {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"blocked": true,
			"reason":  result.BlockedReason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
