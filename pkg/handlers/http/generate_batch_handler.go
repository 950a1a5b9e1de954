package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/domain/template"
	"github.com/complyport/compliance-engine/pkg/generation"
)

type generateBatchRequest struct {
	Framework      string                `json:"framework"`
	Profile        domain.CompanyProfile `json:"profile"`
	TargetProvider string                `json:"target_provider"`
	Options        domain.Options        `json:"options"`
}

type generateBatchHandler struct {
	logger       *logrus.Logger
	orchestrator *generation.Orchestrator
	jobs         *generation.JobStore
}

func NewGenerateBatchHandler(
	logger *logrus.Logger,
	orchestrator *generation.Orchestrator,
	jobs *generation.JobStore,
) Handler {
	return &generateBatchHandler{
		logger:       logger,
		orchestrator: orchestrator,
		jobs:         jobs,
	}
}

func (h *generateBatchHandler) Handle(c *fiber.Ctx) error {
	var req generateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if len(template.ForFramework(req.Framework)) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown framework"})
	}

	target, err := domain.ParseProvider(req.TargetProvider)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job := h.jobs.Launch(req.Framework, func(ctx context.Context, onProgress domain.ProgressFunc) ([]domain.BatchItemResult, error) {
		return h.orchestrator.GenerateBatch(ctx, req.Framework, req.Profile, target, req.Options, onProgress)
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": job.ID})
}
