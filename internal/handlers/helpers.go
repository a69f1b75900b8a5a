package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/api/internal/repositories"
	"resumatch/api/internal/services"
)

// actorID reads the authenticated actor from the X-Actor-ID header. Token
// verification happens upstream; the capability check on the id is done by
// the workflows themselves.
func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get("X-Actor-ID")
	if raw == "" {
		return uuid.Nil, errors.New("missing X-Actor-ID header")
	}
	return uuid.Parse(raw)
}

// workflowError maps workflow errors onto HTTP responses.
func workflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "actor not allowed",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "record not found",
		})
	case errors.Is(err, services.ErrNoCandidates):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "no gradable candidates for job",
		})
	case errors.Is(err, services.ErrModelOutputMalformed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "model returned unusable output",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
