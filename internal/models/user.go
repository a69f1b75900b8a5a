package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleRecruiter UserRole = "recruiter"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:text;uniqueIndex" json:"email"`
	Name      string    `gorm:"type:text" json:"name"`
	Role      UserRole  `gorm:"type:varchar(16);default:'applicant'" json:"role"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}
