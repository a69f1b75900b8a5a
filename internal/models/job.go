package models

import (
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeFull    JobType = "FULL"
	JobTypePart    JobType = "PART"
	JobTypeCont    JobType = "CONT"
	JobTypeUnknown JobType = "UNKN"
)

// ZeroDate is the canonical "unknown" value for ddmmyyyy date fields.
const ZeroDate = "00000000"

type Job struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title               string    `gorm:"type:text" json:"title"`
	Company             string    `gorm:"type:text" json:"company"`
	Description         string    `gorm:"type:text" json:"description"`
	RequiredSkills      []string  `gorm:"serializer:json" json:"required_skills"`
	ApplicationDeadline string    `gorm:"type:varchar(8)" json:"application_deadline"`
	Location            string    `gorm:"type:text" json:"location"`
	Salary              float64   `gorm:"type:decimal(12,2)" json:"salary"`
	JobType             JobType   `gorm:"type:varchar(4)" json:"job_type"`
	Active              bool      `gorm:"default:true" json:"active"`
	CreatedAt           time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt           time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// ParseJobType maps arbitrary model output onto the four-value enum.
// Unknown values are coerced to UNKN, never rejected.
func ParseJobType(s string) JobType {
	switch JobType(s) {
	case JobTypeFull, JobTypePart, JobTypeCont, JobTypeUnknown:
		return JobType(s)
	default:
		return JobTypeUnknown
	}
}
