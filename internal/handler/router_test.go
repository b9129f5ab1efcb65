package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-gateway/internal/config"
	"ai-gateway/internal/domain"
)

func testContainer() *config.Container {
	return &config.Container{
		Config:            &mockConfig{apiKey: "secret"},
		Logger:            NewMockHandlerLogger(),
		CompletionService: &mockCompletionService{result: &domain.GenerateResult{Content: "ok"}},
		EmbeddingService:  &mockEmbeddingService{result: &domain.EmbedResult{Embeddings: [][]float64{{0.1}}}},
		BookParser:        &mockBookParser{book: sampleBook()},
		PDFFetcher:        &mockPDFFetcher{path: "/tmp/x.pdf"},
	}
}

func TestNewRouter_RootIsOpen(t *testing.T) {
	router := NewRouter(testContainer())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "AI Gateway API") {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_HealthzRequiresKey(t *testing.T) {
	router := NewRouter(testContainer())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestNewRouter_HealthzWithKey(t *testing.T) {
	router := NewRouter(testContainer())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-API-Key", "secret")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_GenerateRequiresKey(t *testing.T) {
	router := NewRouter(testContainer())

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestNewRouter_GenerateWithKey(t *testing.T) {
	router := NewRouter(testContainer())

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header on response")
	}
}
