package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/complyport/compliance-engine/pkg/generation"
)

type getJobHandler struct {
	logger *logrus.Logger
	jobs   *generation.JobStore
}

func NewGetJobHandler(logger *logrus.Logger, jobs *generation.JobStore) Handler {
	return &getJobHandler{
		logger: logger,
		jobs:   jobs,
	}
}

func (h *getJobHandler) Handle(c *fiber.Ctx) error {
	job, ok := h.jobs.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.Status(fiber.StatusOK).JSON(job)
}
