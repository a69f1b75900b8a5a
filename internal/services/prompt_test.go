package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"resumatch/api/internal/models"
)

func TestBatchGradingInstructions(t *testing.T) {
	pb := NewPromptBuilder()
	out := pb.BatchGradingInstructions(3, 100)

	assert.Contains(t, out, "3 resume(s)")
	assert.Contains(t, out, "0 to 100")
	assert.Contains(t, out, ResumeEndDelimiter)
	assert.Contains(t, out, `"1" to "3"`)
}

func TestBuildBatchGradingContent(t *testing.T) {
	pb := NewPromptBuilder()
	job := &models.Job{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		Company:        "Acme",
		Description:    "Build services",
		RequiredSkills: []string{"go", "postgres"},
		Location:       "Remote",
		Salary:         120000,
	}
	resumes := []models.Resume{
		{UserID: uuid.New(), Skills: []string{"go"}},
		{UserID: uuid.New(), Skills: []string{"java"}},
	}

	out := pb.BuildBatchGradingContent(job, resumes)

	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "go, postgres")
	assert.Equal(t, 2, strings.Count(out, ResumeEndDelimiter))

	// Identity and non-fit job fields stay out of the prompt.
	assert.NotContains(t, out, job.ID.String())
	assert.NotContains(t, out, resumes[0].UserID.String())
	assert.NotContains(t, out, "Remote")
	assert.NotContains(t, out, "120000")
}
