package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resumatch/api/internal/models"
)

const defaultSearchLimit = 10

// SearchService finds the resumes semantically closest to a free-text query,
// typically a job description.
type SearchService interface {
	SearchCandidates(ctx context.Context, actorID uuid.UUID, text string, limit int) ([]models.CandidateSearchResult, error)
}

type searchService struct {
	gemini     GeminiService
	qdrant     QdrantService
	authorizer Authorizer
}

func NewSearchService(gemini GeminiService, qdrant QdrantService, authorizer Authorizer) SearchService {
	return &searchService{
		gemini:     gemini,
		qdrant:     qdrant,
		authorizer: authorizer,
	}
}

// SearchCandidates implements SearchService.
func (s *searchService) SearchCandidates(ctx context.Context, actorID uuid.UUID, text string, limit int) ([]models.CandidateSearchResult, error) {
	if err := s.authorizer.Authorize(actorID, CapManageJobs); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed search query: %w", err)
	}

	hits, err := s.qdrant.SearchResumes(ctx, embedding, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.CandidateSearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.CandidateSearchResult{
			ResumeID: hit.ResumeID,
			Score:    hit.Score,
		})
	}

	return results, nil
}
