package models

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceEntry struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
}

type EducationEntry struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Institution string `json:"institution"`
	CourseName  string `json:"course_name"`
}

type Resume struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	// uuid.Nil means the resume has not been associated with a user yet.
	UserID     uuid.UUID         `gorm:"type:uuid" json:"user_id"`
	Skills     []string          `gorm:"serializer:json" json:"skills"`
	Experience []ExperienceEntry `gorm:"serializer:json" json:"experience"`
	Education  []EducationEntry  `gorm:"serializer:json" json:"education"`
	Indexed    bool              `gorm:"default:false" json:"indexed"`
	CreatedAt  time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
