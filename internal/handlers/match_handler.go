package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
)

type MatchHandler struct {
	matchRepo  repositories.MatchRepository
	jobRepo    repositories.JobRepository
	resumeRepo repositories.ResumeRepository
}

func NewMatchHandler(
	matchRepo repositories.MatchRepository,
	jobRepo repositories.JobRepository,
	resumeRepo repositories.ResumeRepository,
) *MatchHandler {
	return &MatchHandler{
		matchRepo:  matchRepo,
		jobRepo:    jobRepo,
		resumeRepo: resumeRepo,
	}
}

// HandleCreateMatch handles POST /matches. Matches start in the matched
// state; the grading workflow later mutates grade and status only.
func (h *MatchHandler) HandleCreateMatch(c *fiber.Ctx) error {
	var req models.CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user_id format",
		})
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job_id format",
		})
	}
	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return workflowError(c, err)
	}
	if _, err := h.resumeRepo.FindByID(resumeID); err != nil {
		return workflowError(c, err)
	}

	match := &models.Match{
		ID:         uuid.New(),
		UserID:     userID,
		JobID:      jobID,
		ResumeID:   resumeID,
		Status:     models.StatusLabels[models.StatusCodeMatched],
		StatusCode: models.StatusCodeMatched,
	}

	if err := h.matchRepo.Create(match); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create match",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(match)
}

// HandleListJobMatches handles GET /jobs/:id/matches.
func (h *MatchHandler) HandleListJobMatches(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	matches, err := h.matchRepo.FindByJob(jobID)
	if err != nil {
		return workflowError(c, err)
	}

	results := make([]models.MatchResult, 0, len(matches))
	for i := range matches {
		results = append(results, models.MatchResultFrom(&matches[i]))
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"matches": results,
	})
}
