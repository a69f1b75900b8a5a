package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCodePending = 0
	StatusCodeMatched = 1
	StatusCodeGraded  = 2
)

// StatusLabels is the status_code -> status label lookup table.
var StatusLabels = map[int]string{
	StatusCodePending: "pending",
	StatusCodeMatched: "matched",
	StatusCodeGraded:  "graded",
}

type Match struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	JobID          uuid.UUID `gorm:"type:uuid;not null" json:"job_id"`
	ResumeID       uuid.UUID `gorm:"type:uuid;not null" json:"resume_id"`
	Status         string    `gorm:"type:text" json:"status"`
	StatusCode     int       `gorm:"default:0" json:"status_code"`
	Grade          float64   `gorm:"default:0" json:"grade"`
	SelectedSkills []string  `gorm:"serializer:json" json:"selected_skills,omitempty"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (m *Match) TableName() string {
	return "matches"
}
