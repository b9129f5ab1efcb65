package config

import (
	"ai-gateway/internal/domain"
	"ai-gateway/internal/service"
	"ai-gateway/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	CompletionService domain.CompletionService
	EmbeddingService  domain.EmbeddingService
	BookParser        domain.BookParser
	PDFFetcher        domain.PDFFetcher
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	openaiClient := service.NewOpenAIClient(config)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		CompletionService: service.NewCompletionService(openaiClient, config, appLogger),
		EmbeddingService:  service.NewEmbeddingService(openaiClient, config, appLogger),
		BookParser:        service.NewBookParser(appLogger),
		PDFFetcher:        service.NewPDFFetcher(config, appLogger),
	}
}
