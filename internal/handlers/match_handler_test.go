package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/api/internal/models"
)

type matchFixture struct {
	app       *fiber.App
	jobRepo   *memJobRepo
	resume    *models.Resume
	job       *models.Job
	matchRepo *memMatchRepo
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()

	f := &matchFixture{
		jobRepo:   newMemJobRepo(),
		matchRepo: &memMatchRepo{},
	}
	resumeRepo := newMemResumeRepo()

	f.job = &models.Job{Title: "Backend Engineer"}
	require.NoError(t, f.jobRepo.Create(f.job))
	f.resume = &models.Resume{Skills: []string{"go"}}
	require.NoError(t, resumeRepo.Create(f.resume))

	h := NewMatchHandler(f.matchRepo, f.jobRepo, resumeRepo)
	f.app = fiber.New()
	f.app.Post("/matches", h.HandleCreateMatch)
	f.app.Get("/jobs/:id/matches", h.HandleListJobMatches)

	return f
}

func TestHandleCreateMatch(t *testing.T) {
	f := newMatchFixture(t)

	payload := `{"user_id": "` + uuid.New().String() + `", "job_id": "` + f.job.ID.String() + `", "resume_id": "` + f.resume.ID.String() + `"}`
	req := httptest.NewRequest("POST", "/matches", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var match models.Match
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &match))
	assert.Equal(t, models.StatusCodeMatched, match.StatusCode)
	assert.Equal(t, "matched", match.Status)

	require.Len(t, f.matchRepo.matches, 1)
}

func TestHandleCreateMatchUnknownJob(t *testing.T) {
	f := newMatchFixture(t)

	payload := `{"user_id": "` + uuid.New().String() + `", "job_id": "` + uuid.New().String() + `", "resume_id": "` + f.resume.ID.String() + `"}`
	req := httptest.NewRequest("POST", "/matches", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Empty(t, f.matchRepo.matches)
}

func TestHandleCreateMatchBadPayload(t *testing.T) {
	f := newMatchFixture(t)

	req := httptest.NewRequest("POST", "/matches", strings.NewReader(`{"job_id": "nope"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListJobMatches(t *testing.T) {
	f := newMatchFixture(t)

	require.NoError(t, f.matchRepo.Create(&models.Match{
		JobID:      f.job.ID,
		ResumeID:   f.resume.ID,
		Status:     "graded",
		StatusCode: models.StatusCodeGraded,
		Grade:      -2,
	}))

	req := httptest.NewRequest("GET", "/jobs/"+f.job.ID.String()+"/matches", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Matches []models.MatchResult `json:"matches"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Matches, 1)
	assert.Equal(t, models.GradeIrrelevant, body.Matches[0].GradeKind)
}
