package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resumatch/api/internal/models"
	"resumatch/api/internal/services"
)

type SearchHandler struct {
	search services.SearchService
}

func NewSearchHandler(search services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// HandleSearchCandidates handles POST /candidates/search.
func (h *SearchHandler) HandleSearchCandidates(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing actor id",
		})
	}

	var req models.CandidateSearchRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	results, err := h.search.SearchCandidates(c.Context(), actor, req.Text, req.Limit)
	if err != nil {
		return workflowError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}
