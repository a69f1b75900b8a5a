package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantService stores resume profile embeddings and answers similarity
// queries for candidate search.
type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertResumeChunk(ctx context.Context, resumeID uuid.UUID, text string, embedding []float32) error
	// SearchResumes returns the nearest resumes for a query embedding,
	// deduplicated by resume id keeping the best-scoring chunk.
	SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error)
	DeleteResume(ctx context.Context, resumeID uuid.UUID) error
}

type ResumeHit struct {
	ResumeID uuid.UUID
	Score    float32
	Text     string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC client talks to the gRPC port, 6334 by default.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 vector size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// UpsertResumeChunk implements QdrantService.
func (q *qdrantService) UpsertResumeChunk(ctx context.Context, resumeID uuid.UUID, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"resume_id": resumeID.String(),
			"text":      text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchResumes implements QdrantService.
func (q *qdrantService) SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeHit, error) {
	// Over-fetch so chunk duplicates still leave enough distinct resumes.
	fetch := uint64(limit * 4)

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(fetch),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := map[uuid.UUID]bool{}
	var hits []ResumeHit

	for _, point := range searchResult {
		payload := point.Payload

		var hit ResumeHit
		hit.Score = point.Score

		if raw, ok := payload["resume_id"]; ok {
			if val, ok := raw.GetKind().(*qdrant.Value_StringValue); ok {
				if id, err := uuid.Parse(val.StringValue); err == nil {
					hit.ResumeID = id
				}
			}
		}
		if hit.ResumeID == uuid.Nil || seen[hit.ResumeID] {
			continue
		}

		if raw, ok := payload["text"]; ok {
			if val, ok := raw.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Text = val.StringValue
			}
		}

		seen[hit.ResumeID] = true
		hits = append(hits, hit)
		if len(hits) >= limit {
			break
		}
	}

	return hits, nil
}

// DeleteResume implements QdrantService.
func (q *qdrantService) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("resume_id", resumeID.String()),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume points: %w", err)
	}

	return nil
}
