package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumatch/api/internal/models"
)

type MatchRepository interface {
	Create(match *models.Match) error
	FindByID(id uuid.UUID) (*models.Match, error)
	FindByJob(jobID uuid.UUID) ([]models.Match, error)
	// FindGradable returns the job's matches that are matched but not yet
	// graded, in creation order.
	FindGradable(jobID uuid.UUID) ([]models.Match, error)
	// UpdateGrade persists a graded match: grade, status label and status
	// code. Single-row update, no cross-row transaction.
	UpdateGrade(id uuid.UUID, grade float64) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Create implements MatchRepository.
func (r *matchRepository) Create(match *models.Match) error {
	if err := r.db.Create(match).Error; err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// FindByID implements MatchRepository.
func (r *matchRepository) FindByID(id uuid.UUID) (*models.Match, error) {
	var match models.Match
	if err := r.db.Where("id = ?", id).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return &match, nil
}

// FindByJob implements MatchRepository.
func (r *matchRepository) FindByJob(jobID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}
	return matches, nil
}

// FindGradable implements MatchRepository.
func (r *matchRepository) FindGradable(jobID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("job_id = ? AND status_code = ?", jobID, models.StatusCodeMatched).
		Order("created_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find gradable matches: %w", err)
	}
	return matches, nil
}

// UpdateGrade implements MatchRepository.
func (r *matchRepository) UpdateGrade(id uuid.UUID, grade float64) error {
	result := r.db.Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"grade":       grade,
			"status":      models.StatusLabels[models.StatusCodeGraded],
			"status_code": models.StatusCodeGraded,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
