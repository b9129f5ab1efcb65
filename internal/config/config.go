package config

import (
	"os"
	"strconv"

	"ai-gateway/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	LogLevel          string
	APIKey            string
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAITimeout     int
	DefaultChatModel  string
	DefaultEmbedModel string
	MaxFileSize       int64
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		APIKey:            getEnvOrDefault("API_KEY", ""),
		OpenAIKey:         getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAITimeout:     getEnvIntOrDefault("OPENAI_TIMEOUT", 120),
		DefaultChatModel:  getEnvOrDefault("DEFAULT_CHAT_MODEL", "gpt-4o-mini"),
		DefaultEmbedModel: getEnvOrDefault("DEFAULT_EMBED_MODEL", "text-embedding-3-small"),
		MaxFileSize:       getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAPIKey returns the shared secret expected in X-API-Key
func (c *AppConfig) GetAPIKey() string {
	return c.APIKey
}

// GetOpenAIKey returns the provider API key
func (c *AppConfig) GetOpenAIKey() string {
	return c.OpenAIKey
}

// GetOpenAIBaseURL returns the provider base URL override, if any
func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

// GetOpenAITimeout returns the provider request timeout in seconds
func (c *AppConfig) GetOpenAITimeout() int {
	return c.OpenAITimeout
}

// GetDefaultChatModel returns the completion model used when the request
// omits one
func (c *AppConfig) GetDefaultChatModel() string {
	return c.DefaultChatModel
}

// GetDefaultEmbedModel returns the embedding model used when the request
// omits one
func (c *AppConfig) GetDefaultEmbedModel() string {
	return c.DefaultEmbedModel
}

// GetMaxFileSize returns the maximum allowed upload/download size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
