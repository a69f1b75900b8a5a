package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"resumatch/api/internal/config"
	"resumatch/api/internal/logger"
)

// GeminiService is the model gateway: exactly one round trip to the external
// generation model per call, coerced into the caller's requested shape. No
// retry or backoff happens at this layer; callers own that policy.
type GeminiService interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
	// GenerateObject requests a JSON-constrained response and returns the
	// parsed mapping. An unparseable answer fails with
	// ErrModelOutputMalformed; the caller decides the fallback.
	GenerateObject(ctx context.Context, system, user string) (map[string]any, error)
	// GenerateInt and GenerateFloat run the free-text answer through numeric
	// extraction bounded by [min, max]; pass Unbounded for both to disable
	// the window. No extractable candidate degrades to -1, logged not raised.
	GenerateInt(ctx context.Context, system, user string, min, max int) (int, error)
	GenerateFloat(ctx context.Context, system, user string, min, max float64) (float64, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	logger     *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  cfg.Model,
		embedModel: cfg.EmbedModel,
		logger:     log,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, system, user string) (string, error) {
	return g.generate(ctx, system, user, "")
}

// GenerateObject implements GeminiService.
func (g *geminiService) GenerateObject(ctx context.Context, system, user string) (map[string]any, error) {
	text, err := g.generate(ctx, system, user, "application/json")
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil {
		g.logger.Warn("structured response did not parse",
			zap.String("response_preview", logger.Truncate(text, 200)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrModelOutputMalformed, err)
	}

	return out, nil
}

// GenerateInt implements GeminiService.
func (g *geminiService) GenerateInt(ctx context.Context, system, user string, min, max int) (int, error) {
	bounded := min != Unbounded || max != Unbounded

	text, err := g.generate(ctx, system, user, "")
	if err != nil {
		return 0, err
	}

	v, ok := ExtractNumber(text, float64(min), float64(max), bounded)
	if !ok {
		g.logger.Warn("no numeric value in model response",
			zap.String("response_preview", logger.Truncate(text, 200)),
		)
		return -1, nil
	}
	return int(v), nil
}

// GenerateFloat implements GeminiService.
func (g *geminiService) GenerateFloat(ctx context.Context, system, user string, min, max float64) (float64, error) {
	bounded := min != Unbounded || max != Unbounded

	text, err := g.generate(ctx, system, user, "")
	if err != nil {
		return 0, err
	}

	v, ok := ExtractNumber(text, min, max, bounded)
	if !ok {
		g.logger.Warn("no numeric value in model response",
			zap.String("response_preview", logger.Truncate(text, 200)),
		)
		return -1.0, nil
	}
	return v, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long for the embedding model.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

func (g *geminiService) generate(ctx context.Context, system, user, responseMIMEType string) (string, error) {
	temperature := float32(0.2)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if responseMIMEType != "" {
		cfg.ResponseMIMEType = responseMIMEType
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// extractJSON strips markdown fences and surrounding prose from a response
// that should be a JSON document.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
