package services

import (
	"context"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumatch/api/internal/config"
	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
	"resumatch/api/internal/validation"
)

// BatchResult carries one completed grading batch. BatchIndex refers to the
// batch's position in the original candidate order; batches complete in
// whatever order their model calls return.
type BatchResult struct {
	BatchIndex int                  `json:"batch_index"`
	Results    []models.MatchResult `json:"results"`
}

// GraderService grades every matched-but-ungraded resume of a job against its
// description. Batches are dispatched concurrently; a single batch's failure
// never aborts the session, it degrades that batch to sentinel grades.
type GraderService interface {
	// GradeJob runs a full session and returns the updated matches in the
	// original candidate submission order.
	GradeJob(ctx context.Context, actorID, jobID uuid.UUID) ([]models.MatchResult, error)
	// GradeJobStream runs a session and calls emit once per completed batch,
	// in completion order. Once stop is closed no further batches are
	// dispatched; batches already in flight still finish and persist.
	GradeJobStream(ctx context.Context, actorID, jobID uuid.UUID, stop <-chan struct{}, emit func(BatchResult) error) error
}

type graderService struct {
	gemini        GeminiService
	authorizer    Authorizer
	jobRepo       repositories.JobRepository
	resumeRepo    repositories.ResumeRepository
	matchRepo     repositories.MatchRepository
	promptBuilder *PromptBuilder
	cfg           config.GradingConfig
	logger        *zap.Logger
}

func NewGraderService(
	gemini GeminiService,
	authorizer Authorizer,
	jobRepo repositories.JobRepository,
	resumeRepo repositories.ResumeRepository,
	matchRepo repositories.MatchRepository,
	cfg config.GradingConfig,
	log *zap.Logger,
) GraderService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	return &graderService{
		gemini:        gemini,
		authorizer:    authorizer,
		jobRepo:       jobRepo,
		resumeRepo:    resumeRepo,
		matchRepo:     matchRepo,
		promptBuilder: NewPromptBuilder(),
		cfg:           cfg,
		logger:        log,
	}
}

// batch pairs a slice of candidates with their position in submission order.
type batch struct {
	index   int
	job     *models.Job
	matches []models.Match
	resumes []models.Resume
}

// GradeJob implements GraderService.
func (g *graderService) GradeJob(ctx context.Context, actorID, jobID uuid.UUID) ([]models.MatchResult, error) {
	batches, err := g.load(ctx, actorID, jobID)
	if err != nil {
		return nil, err
	}

	byIndex := make([][]models.MatchResult, len(batches))
	err = g.dispatch(ctx, batches, nil, func(res BatchResult) error {
		byIndex[res.BatchIndex] = res.Results
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Aggregate in original candidate submission order regardless of
	// completion order.
	var out []models.MatchResult
	for _, results := range byIndex {
		out = append(out, results...)
	}
	return out, nil
}

// GradeJobStream implements GraderService.
func (g *graderService) GradeJobStream(ctx context.Context, actorID, jobID uuid.UUID, stop <-chan struct{}, emit func(BatchResult) error) error {
	batches, err := g.load(ctx, actorID, jobID)
	if err != nil {
		return err
	}

	return g.dispatch(ctx, batches, stop, emit)
}

// load authorizes the actor, fetches the job and its gradable matches with
// their resumes, and partitions the candidates into fixed-size batches.
func (g *graderService) load(ctx context.Context, actorID, jobID uuid.UUID) ([]batch, error) {
	if err := g.authorizer.Authorize(actorID, CapGrade); err != nil {
		return nil, err
	}

	job, err := g.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	matches, err := g.matchRepo.FindGradable(jobID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoCandidates
	}

	resumeIDs := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		resumeIDs = append(resumeIDs, m.ResumeID)
	}

	resumes, err := g.resumeRepo.FindByIDs(resumeIDs)
	if err != nil {
		return nil, err
	}
	resumeByID := make(map[uuid.UUID]models.Resume, len(resumes))
	for _, r := range resumes {
		resumeByID[r.ID] = r
	}

	var batches []batch
	current := batch{index: 0, job: job}
	for _, m := range matches {
		current.matches = append(current.matches, m)
		current.resumes = append(current.resumes, resumeByID[m.ResumeID])
		if len(current.matches) == g.cfg.BatchSize {
			batches = append(batches, current)
			current = batch{index: len(batches), job: job}
		}
	}
	if len(current.matches) > 0 {
		batches = append(batches, current)
	}

	return batches, nil
}

// dispatch runs one model call per batch, bounded by the configured
// concurrency, and hands completed batches to emit in completion order. When
// stop closes, no further batches are dispatched; in-flight calls are allowed
// to finish and persist.
func (g *graderService) dispatch(ctx context.Context, batches []batch, stop <-chan struct{}, emit func(BatchResult) error) error {
	results := make(chan BatchResult, len(batches))
	sem := make(chan struct{}, g.cfg.Concurrency)

	var wg sync.WaitGroup
	go func() {
	dispatchLoop:
		for _, b := range batches {
			select {
			case <-stop:
				break dispatchLoop
			default:
			}

			sem <- struct{}{}
			wg.Add(1)
			go func(b batch) {
				defer wg.Done()
				defer func() { <-sem }()
				results <- g.runBatch(ctx, b)
			}(b)
		}
		wg.Wait()
		close(results)
	}()

	stopped := false
	for res := range results {
		if stopped {
			continue
		}
		if err := emit(res); err != nil {
			// The consumer is gone. Drain remaining completions so
			// in-flight batches still persist.
			g.logger.Warn("grading result sink failed, draining session",
				zap.Int("batch_index", res.BatchIndex),
				zap.Error(err),
			)
			stopped = true
		}
	}

	return nil
}

// runBatch issues the batch's single model call, reconciles the keyed
// response onto the batch's candidate order, and persists every grade. It
// never fails: malformed or missing output degrades to the -3 sentinel.
func (g *graderService) runBatch(ctx context.Context, b batch) BatchResult {
	system := g.promptBuilder.BatchGradingInstructions(len(b.resumes), g.cfg.MaxGrade)
	content := g.promptBuilder.BuildBatchGradingContent(b.job, b.resumes)

	rawMapping := map[string]any{}
	raw, err := g.gemini.GenerateObject(ctx, system, content)
	if err != nil {
		g.logger.Warn("grading batch call failed, degrading to sentinels",
			zap.Int("batch_index", b.index),
			zap.Int("batch_size", len(b.matches)),
			zap.Error(err),
		)
	} else if mapping, ok := raw["grades"].(map[string]any); ok {
		rawMapping = mapping
	} else {
		g.logger.Warn("grading batch response missing grades key",
			zap.Int("batch_index", b.index),
		)
	}

	parsed := parseBatchGrades(rawMapping)
	if !validation.ValidateGrades(parsed, g.cfg.MaxGrade, len(b.matches)) {
		g.logger.Warn("grading batch response repaired",
			zap.Int("batch_index", b.index),
			zap.Int("expected", len(b.matches)),
			zap.Int("received", len(parsed)),
		)
	}
	grades := validation.CleanGrades(parsed, g.cfg.MaxGrade, len(b.matches), rawMapping)

	results := make([]models.MatchResult, 0, len(b.matches))
	for i, m := range b.matches {
		grade := validation.GradeValidationFailed
		if i < len(grades) {
			grade = grades[i]
		}

		if err := g.matchRepo.UpdateGrade(m.ID, grade); err != nil {
			g.logger.Error("failed to persist grade",
				zap.String("match_id", m.ID.String()),
				zap.Error(err),
			)
		}

		m.Grade = grade
		m.Status = models.StatusLabels[models.StatusCodeGraded]
		m.StatusCode = models.StatusCodeGraded
		results = append(results, models.MatchResultFrom(&m))
	}

	return BatchResult{BatchIndex: b.index, Results: results}
}

// parseBatchGrades turns the model's position->grade mapping into an ordered
// grade list. Keys are stringified 1-indexed positions and are interpreted
// numerically, not in map order; garbled keys are dropped and uncoercible
// values become NaN so the grade validator repairs them to -3.
func parseBatchGrades(mapping map[string]any) []float64 {
	positions := make([]int, 0, len(mapping))
	for key := range mapping {
		if pos, err := strconv.Atoi(key); err == nil {
			positions = append(positions, pos)
		}
	}
	sort.Ints(positions)

	grades := make([]float64, 0, len(positions))
	for _, pos := range positions {
		grades = append(grades, coerceGrade(mapping[strconv.Itoa(pos)]))
	}
	return grades
}

func coerceGrade(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
