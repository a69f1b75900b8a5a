package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumatch/api/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	FindUnindexed(limit int) ([]models.Resume, error)
	MarkIndexed(id uuid.UUID) error
	// ResetIndexed clears every indexed flag so the reindex tool can rebuild
	// the vector store from scratch.
	ResetIndexed() error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindByIDs implements ResumeRepository.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}
	return resumes, nil
}

// FindUnindexed implements ResumeRepository.
func (r *resumeRepository) FindUnindexed(limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("indexed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed resumes: %w", err)
	}
	return resumes, nil
}

// MarkIndexed implements ResumeRepository.
func (r *resumeRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Update("indexed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark resume indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetIndexed implements ResumeRepository.
func (r *resumeRepository) ResetIndexed() error {
	err := r.db.Model(&models.Resume{}).
		Where("indexed = ?", true).
		Update("indexed", false).Error
	if err != nil {
		return fmt.Errorf("failed to reset indexed flags: %w", err)
	}
	return nil
}
