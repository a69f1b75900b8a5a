package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
)

type FeedbackHandler struct {
	feedbackRepo repositories.FeedbackRepository
	matchRepo    repositories.MatchRepository
}

func NewFeedbackHandler(
	feedbackRepo repositories.FeedbackRepository,
	matchRepo repositories.MatchRepository,
) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo: feedbackRepo,
		matchRepo:    matchRepo,
	}
}

// HandleCreateFeedback handles POST /feedback.
func (h *FeedbackHandler) HandleCreateFeedback(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing actor id",
		})
	}

	var req models.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body is required",
		})
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid match_id format",
		})
	}

	if _, err := h.matchRepo.FindByID(matchID); err != nil {
		return workflowError(c, err)
	}

	feedback := &models.Feedback{
		ID:       uuid.New(),
		MatchID:  matchID,
		AuthorID: actor,
		Body:     req.Body,
	}

	if err := h.feedbackRepo.Create(feedback); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// HandleListMatchFeedback handles GET /matches/:id/feedback.
func (h *FeedbackHandler) HandleListMatchFeedback(c *fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid match id",
		})
	}

	feedback, err := h.feedbackRepo.FindByMatch(matchID)
	if err != nil {
		return workflowError(c, err)
	}

	return c.JSON(fiber.Map{
		"match_id": matchID,
		"feedback": feedback,
	})
}
