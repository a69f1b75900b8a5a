package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
	"resumatch/api/internal/validation"
)

// ExtractorService turns unstructured resume or job posting text into typed,
// persisted records via a single model call each.
type ExtractorService interface {
	ExtractResume(ctx context.Context, actorID uuid.UUID, text string) (*models.Resume, error)
	ExtractJob(ctx context.Context, actorID uuid.UUID, text string) (*models.Job, error)
}

type extractorService struct {
	gemini        GeminiService
	authorizer    Authorizer
	resumeRepo    repositories.ResumeRepository
	jobRepo       repositories.JobRepository
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewExtractorService(
	gemini GeminiService,
	authorizer Authorizer,
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	log *zap.Logger,
) ExtractorService {
	return &extractorService{
		gemini:        gemini,
		authorizer:    authorizer,
		resumeRepo:    resumeRepo,
		jobRepo:       jobRepo,
		promptBuilder: NewPromptBuilder(),
		logger:        log,
	}
}

// ExtractResume implements ExtractorService. A gateway or parse failure is a
// hard error surfaced to the caller; schema repairs are soft and logged.
func (e *extractorService) ExtractResume(ctx context.Context, actorID uuid.UUID, text string) (*models.Resume, error) {
	if err := e.authorizer.Authorize(actorID, CapExtractResume); err != nil {
		return nil, err
	}

	raw, err := e.gemini.GenerateObject(ctx, e.promptBuilder.ResumeExtractionInstructions(), text)
	if err != nil {
		return nil, fmt.Errorf("resume extraction failed: %w", err)
	}

	if !validation.ValidateResume(raw) {
		e.logger.Warn("resume extraction output repaired",
			zap.String("actor_id", actorID.String()),
		)
	}
	cleaned := validation.CleanResume(raw)

	resume := models.ResumeFromWire(cleaned)
	resume.UserID = actorID

	if err := e.resumeRepo.Create(resume); err != nil {
		return nil, err
	}

	return resume, nil
}

// ExtractJob implements ExtractorService. New postings are assumed active
// unless later edited, so active is forced before validation.
func (e *extractorService) ExtractJob(ctx context.Context, actorID uuid.UUID, text string) (*models.Job, error) {
	if err := e.authorizer.Authorize(actorID, CapManageJobs); err != nil {
		return nil, err
	}

	raw, err := e.gemini.GenerateObject(ctx, e.promptBuilder.JobExtractionInstructions(), text)
	if err != nil {
		return nil, fmt.Errorf("job extraction failed: %w", err)
	}

	raw["active"] = true

	if !validation.ValidateJob(raw) {
		e.logger.Warn("job extraction output repaired",
			zap.String("actor_id", actorID.String()),
		)
	}
	cleaned := validation.CleanJob(raw)

	job := models.JobFromWire(cleaned)

	if err := e.jobRepo.Create(job); err != nil {
		return nil, err
	}

	return job, nil
}
