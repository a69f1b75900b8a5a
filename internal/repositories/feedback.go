package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumatch/api/internal/models"
)

type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	FindByMatch(matchID uuid.UUID) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create implements FeedbackRepository.
func (r *feedbackRepository) Create(feedback *models.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// FindByMatch implements FeedbackRepository.
func (r *feedbackRepository) FindByMatch(matchID uuid.UUID) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := r.db.
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&feedback).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return feedback, nil
}
