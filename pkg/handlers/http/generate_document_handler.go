package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/domain/template"
	"github.com/complyport/compliance-engine/pkg/generation"
)

type generateDocumentRequest struct {
	Framework      string                `json:"framework"`
	TemplateName   string                `json:"template_name"`
	Profile        domain.CompanyProfile `json:"profile"`
	TargetProvider string                `json:"target_provider"`
	Options        domain.Options        `json:"options"`
}

type generateDocumentHandler struct {
	logger       *logrus.Logger
	orchestrator *generation.Orchestrator
}

func NewGenerateDocumentHandler(logger *logrus.Logger, orchestrator *generation.Orchestrator) Handler {
	return &generateDocumentHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (h *generateDocumentHandler) Handle(c *fiber.Ctx) error {
	var req generateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tmpl, ok := template.Find(req.Framework, req.TemplateName)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown template"})
	}

	target, err := domain.ParseProvider(req.TargetProvider)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Options.GuardrailContext == nil {
		req.Options.GuardrailContext = map[string]string{}
	}
	req.Options.GuardrailContext["caller_ip"] = c.IP()

	result, err := h.orchestrator.GenerateDocument(c.Context(), tmpl, req.Profile, target, req.Options)
	if err != nil {
		return respondGenerationError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
