package service

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ai-gateway/internal/domain"
)

// NewOpenAIClient builds an OpenAI client from configuration. An empty base
// URL keeps the provider default; a non-empty one points the client at any
// OpenAI-compatible endpoint.
func NewOpenAIClient(config domain.Config) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(config.GetOpenAIKey()),
	}
	if baseURL := config.GetOpenAIBaseURL(); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &client
}
