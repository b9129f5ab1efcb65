package service

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"

	"ai-gateway/internal/domain"
)

// EmbeddingService delegates text embedding to the OpenAI API
type EmbeddingService struct {
	client  *openai.Client
	config  domain.Config
	logger  domain.Logger
	timeout time.Duration
}

// NewEmbeddingService creates a new embedding service instance
func NewEmbeddingService(client *openai.Client, config domain.Config, logger domain.Logger) *EmbeddingService {
	return &EmbeddingService{
		client:  client,
		config:  config,
		logger:  logger,
		timeout: time.Duration(config.GetOpenAITimeout()) * time.Second,
	}
}

// Embed generates embeddings for the given inputs. A single string and a
// list of strings take the same path: both are sent as an array.
func (s *EmbeddingService) Embed(ctx context.Context, inputs []string, model string) (*domain.EmbedResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if model == "" {
		model = s.config.GetDefaultEmbedModel()
	}

	s.logger.Debug("Calling embedding provider", "model", model, "inputs", len(inputs))

	response, err := s.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(response.Data) == 0 {
		return nil, fmt.Errorf("no embeddings returned from provider")
	}

	embeddings := make([][]float64, len(response.Data))
	for i, item := range response.Data {
		embeddings[i] = item.Embedding
	}

	return &domain.EmbedResult{
		Model:      response.Model,
		Embeddings: embeddings,
		Usage: domain.EmbedUsage{
			PromptTokens: response.Usage.PromptTokens,
			TotalTokens:  response.Usage.TotalTokens,
		},
	}, nil
}
