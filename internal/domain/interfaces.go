package domain

import (
	"context"

	"ai-gateway/internal/schema"
)

// CompletionService defines the interface for chat completion operations
type CompletionService interface {
	// Generate runs a chat completion. When model is non-nil the provider is
	// asked for structured output matching the compiled schema and the result
	// carries the decoded object; otherwise it carries plain text.
	Generate(ctx context.Context, req *GenerateRequest, model *schema.Model) (*GenerateResult, error)
}

// EmbeddingService defines the interface for text embedding operations
type EmbeddingService interface {
	Embed(ctx context.Context, inputs []string, model string) (*EmbedResult, error)
}

// BookParser defines the interface for PDF-to-structured-text parsing
type BookParser interface {
	ParsePDF(path string) (*ParsedBook, error)
}

// PDFFetcher acquires PDF content into a temporary file. The returned
// cleanup removes the file and must run on every exit path.
type PDFFetcher interface {
	FetchURL(ctx context.Context, url string) (path string, cleanup func(), err error)
	SaveUpload(content []byte) (path string, cleanup func(), err error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetAPIKey() string
	GetOpenAIKey() string
	GetOpenAIBaseURL() string
	GetOpenAITimeout() int
	GetDefaultChatModel() string
	GetDefaultEmbedModel() string
	GetMaxFileSize() int64
}
