package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resumatch/api/internal/config"
	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
	"resumatch/api/internal/validation"
)

// graderFixture wires a grader against in-memory repositories seeded with one
// job and n matched candidates.
type graderFixture struct {
	jobID      uuid.UUID
	matchIDs   []uuid.UUID
	jobRepo    *fakeJobRepo
	resumeRepo *fakeResumeRepo
	matchRepo  *fakeMatchRepo
}

func newGraderFixture(t *testing.T, n int) *graderFixture {
	t.Helper()

	f := &graderFixture{
		jobRepo:    newFakeJobRepo(),
		resumeRepo: newFakeResumeRepo(),
		matchRepo:  &fakeMatchRepo{},
	}

	job := &models.Job{Title: "Backend Engineer", Company: "Acme", Description: "Build services"}
	require.NoError(t, f.jobRepo.Create(job))
	f.jobID = job.ID

	for i := 0; i < n; i++ {
		resume := &models.Resume{Skills: []string{fmt.Sprintf("skill-%d", i)}}
		require.NoError(t, f.resumeRepo.Create(resume))

		match := &models.Match{
			UserID:     uuid.New(),
			JobID:      job.ID,
			ResumeID:   resume.ID,
			Status:     models.StatusLabels[models.StatusCodeMatched],
			StatusCode: models.StatusCodeMatched,
		}
		require.NoError(t, f.matchRepo.Create(match))
		f.matchIDs = append(f.matchIDs, match.ID)
	}

	return f
}

func (f *graderFixture) grader(gemini GeminiService, cfg config.GradingConfig) GraderService {
	return NewGraderService(
		gemini,
		allowAll{},
		f.jobRepo,
		f.resumeRepo,
		f.matchRepo,
		cfg,
		zap.NewNop(),
	)
}

func TestGradeJobReconcilesKeyedResponse(t *testing.T) {
	f := newGraderFixture(t, 3)
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			return map[string]any{
				"grades": map[string]any{"1": "80", "2": "not-a-number", "3": -2},
			}, nil
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 3, MaxGrade: 100, Concurrency: 2})

	results, err := g.GradeJob(context.Background(), uuid.New(), f.jobID)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 80.0, results[0].Grade)
	assert.Equal(t, models.GradeScored, results[0].GradeKind)
	assert.Equal(t, validation.GradeValidationFailed, results[1].Grade)
	assert.Equal(t, models.GradeValidationFailed, results[1].GradeKind)
	assert.Equal(t, -2.0, results[2].Grade)
	assert.Equal(t, models.GradeIrrelevant, results[2].GradeKind)

	for i, id := range f.matchIDs {
		grade, graded := f.matchRepo.gradeOf(id)
		require.True(t, graded, "match %d not persisted as graded", i)
		assert.Equal(t, results[i].Grade, grade)
	}
}

func TestGradeJobFillsMissingPositions(t *testing.T) {
	f := newGraderFixture(t, 5)
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			return map[string]any{
				"grades": map[string]any{"1": 80.0, "2": 70.0},
			}, nil
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 5, MaxGrade: 100, Concurrency: 1})

	results, err := g.GradeJob(context.Background(), uuid.New(), f.jobID)
	require.NoError(t, err)
	require.Len(t, results, 5)

	grades := make([]float64, 0, len(results))
	for _, r := range results {
		grades = append(grades, r.Grade)
	}
	assert.Equal(t, []float64{80, 70, -3, -3, -3}, grades)
}

func TestGradeJobModelFailureDegradesBatch(t *testing.T) {
	f := newGraderFixture(t, 2)
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			return nil, ErrModelOutputMalformed
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 2, MaxGrade: 100, Concurrency: 1})

	results, err := g.GradeJob(context.Background(), uuid.New(), f.jobID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Equal(t, validation.GradeValidationFailed, r.Grade)
		assert.Equal(t, models.StatusCodeGraded, r.StatusCode)
	}
}

func TestGradeJobPreservesSubmissionOrderAcrossBatches(t *testing.T) {
	f := newGraderFixture(t, 4)

	// Each single-candidate batch is graded by the index baked into the
	// resume's only skill, so completion order cannot fake a pass.
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			for i := 0; i < 4; i++ {
				if strings.Contains(user, fmt.Sprintf("skill-%d", i)) {
					return map[string]any{
						"grades": map[string]any{"1": float64(10 * (i + 1))},
					}, nil
				}
			}
			return nil, ErrModelOutputMalformed
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 1, MaxGrade: 100, Concurrency: 4})

	results, err := g.GradeJob(context.Background(), uuid.New(), f.jobID)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, float64(10*(i+1)), r.Grade)
		assert.Equal(t, f.matchIDs[i], r.MatchID)
	}
}

func TestGradeJobNoCandidates(t *testing.T) {
	f := newGraderFixture(t, 0)
	g := f.grader(&stubGemini{}, config.GradingConfig{BatchSize: 1, MaxGrade: 100, Concurrency: 1})

	_, err := g.GradeJob(context.Background(), uuid.New(), f.jobID)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGradeJobUnknownJob(t *testing.T) {
	f := newGraderFixture(t, 1)
	g := f.grader(&stubGemini{}, config.GradingConfig{BatchSize: 1, MaxGrade: 100, Concurrency: 1})

	_, err := g.GradeJob(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGradeJobForbidden(t *testing.T) {
	f := newGraderFixture(t, 1)
	g := NewGraderService(
		&stubGemini{},
		denyAll{},
		f.jobRepo,
		f.resumeRepo,
		f.matchRepo,
		config.GradingConfig{BatchSize: 1, MaxGrade: 100, Concurrency: 1},
		zap.NewNop(),
	)

	_, err := g.GradeJob(context.Background(), uuid.New(), f.jobID)
	assert.ErrorIs(t, err, ErrForbidden)

	for _, id := range f.matchIDs {
		_, graded := f.matchRepo.gradeOf(id)
		assert.False(t, graded)
	}
}

func TestGradeJobStreamEmitsPerBatch(t *testing.T) {
	f := newGraderFixture(t, 4)
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			return map[string]any{
				"grades": map[string]any{"1": 50.0, "2": 60.0},
			}, nil
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 2, MaxGrade: 100, Concurrency: 2})

	var mu sync.Mutex
	var batches []BatchResult
	err := g.GradeJobStream(context.Background(), uuid.New(), f.jobID, nil, func(res BatchResult) error {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, res)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, batches, 2)

	seen := map[int]bool{}
	for _, b := range batches {
		assert.Len(t, b.Results, 2)
		seen[b.BatchIndex] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true}, seen)

	for _, id := range f.matchIDs {
		_, graded := f.matchRepo.gradeOf(id)
		assert.True(t, graded)
	}
}

func TestGradeJobStreamStopBlocksDispatch(t *testing.T) {
	f := newGraderFixture(t, 3)
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			return map[string]any{"grades": map[string]any{"1": 50.0}}, nil
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 1, MaxGrade: 100, Concurrency: 1})

	stop := make(chan struct{})
	close(stop)

	emitted := 0
	err := g.GradeJobStream(context.Background(), uuid.New(), f.jobID, stop, func(res BatchResult) error {
		emitted++
		return nil
	})
	require.NoError(t, err)

	assert.Zero(t, emitted)
	for _, id := range f.matchIDs {
		_, graded := f.matchRepo.gradeOf(id)
		assert.False(t, graded)
	}
}

func TestGradeJobStreamEmitFailureStillPersists(t *testing.T) {
	f := newGraderFixture(t, 2)
	gemini := &stubGemini{
		generateObject: func(system, user string) (map[string]any, error) {
			return map[string]any{"grades": map[string]any{"1": 50.0}}, nil
		},
	}
	g := f.grader(gemini, config.GradingConfig{BatchSize: 1, MaxGrade: 100, Concurrency: 1})

	emitted := 0
	err := g.GradeJobStream(context.Background(), uuid.New(), f.jobID, nil, func(res BatchResult) error {
		emitted++
		return fmt.Errorf("client went away")
	})
	require.NoError(t, err)

	// The sink failed after the first batch, but every dispatched batch
	// still persisted its grades.
	assert.Equal(t, 1, emitted)
	for _, id := range f.matchIDs {
		_, graded := f.matchRepo.gradeOf(id)
		assert.True(t, graded)
	}
}
