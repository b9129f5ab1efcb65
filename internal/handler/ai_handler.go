package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ai-gateway/internal/domain"
	"ai-gateway/internal/schema"
	apperrors "ai-gateway/pkg/errors"
)

// AIHandler handles HTTP requests for completion and embedding operations
type AIHandler struct {
	completionService domain.CompletionService
	embeddingService  domain.EmbeddingService
	logger            domain.Logger
}

// NewAIHandler creates a new AI handler instance
func NewAIHandler(
	completionService domain.CompletionService,
	embeddingService domain.EmbeddingService,
	logger domain.Logger,
) *AIHandler {
	return &AIHandler{
		completionService: completionService,
		embeddingService:  embeddingService,
		logger:            logger,
	}
}

// Generate handles POST /generate. When a response schema is present it is
// compiled first and every few-shot example output must validate against the
// compiled model before the provider is called.
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}
	if len(req.Messages) == 0 {
		writeAppError(w, apperrors.NewValidationError(domain.ErrNoMessages.Error()))
		return
	}
	if len(req.Examples) > 0 && req.ResponseSchema == nil {
		writeAppError(w, apperrors.NewValidationError(domain.ErrExamplesNoModel.Error()))
		return
	}

	var model *schema.Model
	if req.ResponseSchema != nil {
		compiled, err := schema.Compile(req.ResponseSchema)
		if err != nil {
			writeAppError(w, apperrors.NewValidationError("Invalid response_schema: "+err.Error()))
			return
		}
		model = compiled

		for i, example := range req.Examples {
			if err := model.Validate(example.Output); err != nil {
				message := fmt.Sprintf("Example %d does not match response_schema: %v", i, err)
				writeAppError(w, apperrors.NewValidationError(message))
				return
			}
		}
	}

	result, err := h.completionService.Generate(r.Context(), &req, model)
	if err != nil {
		h.logger.Error("Completion failed", err, "model", req.Model)
		writeAppError(w, apperrors.NewUpstreamError("Completion failed", err))
		return
	}

	if result.Structured != nil {
		writeJSON(w, http.StatusOK, result.Structured)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": result.Content})
}

// Embed handles POST /embed. The inputs field accepts a single string or a
// list of strings; both take the same path.
func (h *AIHandler) Embed(w http.ResponseWriter, r *http.Request) {
	var req domain.EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}
	if len(req.Inputs) == 0 {
		writeAppError(w, apperrors.NewValidationError(domain.ErrEmptyInputs.Error()))
		return
	}

	result, err := h.embeddingService.Embed(r.Context(), req.Inputs, req.Model)
	if err != nil {
		h.logger.Error("Embedding failed", err, "model", req.Model, "inputs", len(req.Inputs))
		writeAppError(w, apperrors.NewUpstreamError("Embedding failed", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}
