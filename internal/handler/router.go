package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"ai-gateway/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)

	// Root endpoint (no auth required)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "AI Gateway API"})
	}).Methods("GET")

	// Initialize handlers
	aiHandler := NewAIHandler(container.CompletionService, container.EmbeddingService, container.Logger)
	pdfHandler := NewPDFHandler(container.PDFFetcher, container.BookParser, container.Config, container.Logger)

	// API key middleware for protected routes
	authMiddleware := NewAPIKeyMiddleware(container.Config, container.Logger)

	// Protected routes (require X-API-Key)
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware.Middleware)

	protected.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")

	protected.HandleFunc("/generate", aiHandler.Generate).Methods("POST")
	protected.HandleFunc("/embed", aiHandler.Embed).Methods("POST")
	protected.HandleFunc("/book/parse-pdf", pdfHandler.ParsePDF).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-API-Key",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
