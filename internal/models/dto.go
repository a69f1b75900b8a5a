package models

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type ExtractRequest struct {
	Text string `json:"text"`
}

type CreateMatchRequest struct {
	UserID   string `json:"user_id"`
	JobID    string `json:"job_id"`
	ResumeID string `json:"resume_id"`
}

type CreateFeedbackRequest struct {
	MatchID string `json:"match_id"`
	Body    string `json:"body"`
}

type CandidateSearchRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit"`
}

type CandidateSearchResult struct {
	ResumeID uuid.UUID `json:"resume_id"`
	Score    float32   `json:"score"`
}

// MatchResult is the wire shape of a graded match: the stored legacy grade
// plus its tagged-variant reading.
type MatchResult struct {
	MatchID    uuid.UUID `json:"match_id"`
	UserID     uuid.UUID `json:"user_id"`
	JobID      uuid.UUID `json:"job_id"`
	ResumeID   uuid.UUID `json:"resume_id"`
	Status     string    `json:"status"`
	StatusCode int       `json:"status_code"`
	Grade      float64   `json:"grade"`
	GradeKind  GradeKind `json:"grade_kind"`
}

func MatchResultFrom(m *Match) MatchResult {
	return MatchResult{
		MatchID:    m.ID,
		UserID:     m.UserID,
		JobID:      m.JobID,
		ResumeID:   m.ResumeID,
		Status:     m.Status,
		StatusCode: m.StatusCode,
		Grade:      m.Grade,
		GradeKind:  GradeFromScore(m.Grade).Kind,
	}
}
