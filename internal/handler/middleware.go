package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ai-gateway/internal/domain"
)

// APIKeyMiddleware validates the X-API-Key header against the configured
// shared secret before any handler work happens
type APIKeyMiddleware struct {
	config domain.Config
	logger domain.Logger
}

// NewAPIKeyMiddleware creates a new API key middleware instance
func NewAPIKeyMiddleware(config domain.Config, logger domain.Logger) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		config: config,
		logger: logger,
	}
}

// Middleware rejects requests whose X-API-Key header is missing, blank, or
// does not match the configured secret. A server with no secret configured
// rejects every protected request.
func (m *APIKeyMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, domain.ErrMissingAPIKey.Error())
			return
		}
		if strings.TrimSpace(apiKey) == "" {
			writeError(w, http.StatusUnauthorized, domain.ErrInvalidAPIKey.Error())
			return
		}

		secret := m.config.GetAPIKey()
		if secret == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(secret)) != 1 {
			m.logger.Warn("Rejected request with invalid API key", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, domain.ErrInvalidAPIKey.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware attaches a request ID to the context and response so
// log lines and responses can be correlated
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
