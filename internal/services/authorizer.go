package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
)

// Capability names the actions a workflow entry point can demand. Every
// workflow receives an explicit actor id and runs the capability check before
// its body.
type Capability string

const (
	CapExtractResume Capability = "extract_resume"
	CapManageJobs    Capability = "manage_jobs"
	CapGrade         Capability = "grade"
)

type Authorizer interface {
	Authorize(actorID uuid.UUID, capability Capability) error
}

type authorizer struct {
	userRepo repositories.UserRepository
}

func NewAuthorizer(userRepo repositories.UserRepository) Authorizer {
	return &authorizer{userRepo: userRepo}
}

// Authorize implements Authorizer. Recruiter-only capabilities: managing jobs
// and grading. Any known user may extract their own resume.
func (a *authorizer) Authorize(actorID uuid.UUID, capability Capability) error {
	if actorID == uuid.Nil {
		return ErrForbidden
	}

	actor, err := a.userRepo.FindByID(actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to resolve actor: %w", err)
	}

	switch capability {
	case CapExtractResume:
		return nil
	case CapManageJobs, CapGrade:
		if actor.Role != models.RoleRecruiter {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
