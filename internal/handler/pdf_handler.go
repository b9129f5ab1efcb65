package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"ai-gateway/internal/domain"
	apperrors "ai-gateway/pkg/errors"
)

// PDFHandler handles HTTP requests for PDF parsing
type PDFHandler struct {
	fetcher domain.PDFFetcher
	parser  domain.BookParser
	config  domain.Config
	logger  domain.Logger
}

// NewPDFHandler creates a new PDF handler instance
func NewPDFHandler(
	fetcher domain.PDFFetcher,
	parser domain.BookParser,
	config domain.Config,
	logger domain.Logger,
) *PDFHandler {
	return &PDFHandler{
		fetcher: fetcher,
		parser:  parser,
		config:  config,
		logger:  logger,
	}
}

// pdfParseRequest is the JSON body form of POST /book/parse-pdf
type pdfParseRequest struct {
	URL string `json:"url"`
}

// ParsePDF handles POST /book/parse-pdf. The source is either a JSON body
// carrying a URL or a multipart upload carrying a file; exactly one must be
// usable. The staged temp file is released on every exit path.
func (h *PDFHandler) ParsePDF(w http.ResponseWriter, r *http.Request) {
	path, cleanup, err := h.acquireSource(r)
	if err != nil {
		h.logger.Warn("PDF source acquisition failed", "error", err)
		writeAppError(w, err)
		return
	}
	defer cleanup()

	book, err := h.parser.ParsePDF(path)
	if err != nil {
		h.logger.Error("PDF parsing failed", err)
		writeAppError(w, apperrors.NewUpstreamError("Failed to process PDF", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections": book.Sections,
		"chunks":   book.Chunks,
		"metadata": book.Metadata,
	})
}

// acquireSource stages the PDF content from the request into a temp file.
// The returned cleanup is non-nil whenever err is nil.
func (h *PDFHandler) acquireSource(r *http.Request) (string, func(), error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(h.config.GetMaxFileSize()); err != nil {
			return "", nil, apperrors.NewValidationError("Invalid multipart form: " + err.Error())
		}
		file, _, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			content, readErr := io.ReadAll(io.LimitReader(file, h.config.GetMaxFileSize()+1))
			if readErr != nil {
				return "", nil, apperrors.NewValidationError("Failed to read uploaded file: " + readErr.Error())
			}
			path, cleanup, stageErr := h.fetcher.SaveUpload(content)
			if stageErr != nil {
				return "", nil, apperrors.NewValidationError(stageErr.Error())
			}
			return path, cleanup, nil
		}
		if url := r.FormValue("url"); url != "" {
			return h.download(r, url)
		}
		return "", nil, apperrors.NewValidationError(domain.ErrNoPDFSource.Error())
	}

	var req pdfParseRequest
	if r.Body != nil {
		// An absent or empty body is the "no source" case, not a decode error.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			return "", nil, apperrors.NewValidationError("Invalid request body: " + err.Error())
		}
	}
	if req.URL == "" {
		return "", nil, apperrors.NewValidationError(domain.ErrNoPDFSource.Error())
	}
	return h.download(r, req.URL)
}

func (h *PDFHandler) download(r *http.Request, url string) (string, func(), error) {
	path, cleanup, err := h.fetcher.FetchURL(r.Context(), url)
	if err != nil {
		return "", nil, apperrors.NewDownloadError("Failed to download PDF", err)
	}
	return path, cleanup, nil
}
