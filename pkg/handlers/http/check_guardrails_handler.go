package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	guarddomain "github.com/complyport/compliance-engine/pkg/domain/guardrail"
	"github.com/complyport/compliance-engine/pkg/generation"
)

type checkGuardrailsRequest struct {
	Prompt         string `json:"prompt"`
	Response       string `json:"response,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

type checkGuardrailsHandler struct {
	logger       *logrus.Logger
	orchestrator *generation.Orchestrator
}

func NewCheckGuardrailsHandler(logger *logrus.Logger, orchestrator *generation.Orchestrator) Handler {
	return &checkGuardrailsHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (h *checkGuardrailsHandler) Handle(c *fiber.Ctx) error {
	var req checkGuardrailsRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
	}

	verdict := h.orchestrator.CheckGuardrails(c.Context(), req.Prompt, req.Response, guarddomain.CheckContext{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		RequestID:      req.RequestID,
		CallerIP:       c.IP(),
	})

	return c.Status(fiber.StatusOK).JSON(verdict)
}
