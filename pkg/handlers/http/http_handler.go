package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/generation"
)

type Handler interface {
	Handle(c *fiber.Ctx) error
}

// respondGenerationError maps orchestrator errors onto HTTP responses
// without leaking guardrail internals to the caller.
func respondGenerationError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	var allFailed *domain.AllProvidersFailedError
	switch {
	case errors.Is(err, domain.ErrBlockedByGuardrails):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"blocked": true,
			"reason":  generation.BlockedMessage,
		})
	case errors.As(err, &allFailed):
		logger.WithError(err).Error("all providers failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":      "generation temporarily unavailable",
			"request_id": allFailed.RequestID,
		})
	default:
		logger.WithError(err).Error("generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
