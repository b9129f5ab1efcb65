package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"ai-gateway/internal/domain"
)

// TempPDFFetcher stages PDF content in temporary files. Every acquisition
// returns a cleanup that removes the file; callers defer it so the file is
// released on all exit paths, including parse failures.
type TempPDFFetcher struct {
	config domain.Config
	logger domain.Logger
	client *http.Client
}

// NewPDFFetcher creates a new temp-file backed PDF fetcher
func NewPDFFetcher(config domain.Config, logger domain.Logger) *TempPDFFetcher {
	return &TempPDFFetcher{
		config: config,
		logger: logger,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchURL downloads a PDF into a temporary file. Network errors and
// non-success statuses are both download failures attributable to the
// supplied URL.
func (f *TempPDFFetcher) FetchURL(ctx context.Context, url string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return f.stage(resp.Body)
}

// SaveUpload stages uploaded PDF bytes in a temporary file
func (f *TempPDFFetcher) SaveUpload(content []byte) (string, func(), error) {
	if int64(len(content)) > f.config.GetMaxFileSize() {
		return "", nil, fmt.Errorf("file exceeds maximum size of %d bytes", f.config.GetMaxFileSize())
	}
	tmp, err := os.CreateTemp("", "ai-gateway-"+uuid.NewString()+"-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := f.cleanupFunc(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmp.Name(), cleanup, nil
}

// stage copies body into a fresh temp file, enforcing the size cap
func (f *TempPDFFetcher) stage(body io.Reader) (string, func(), error) {
	tmp, err := os.CreateTemp("", "ai-gateway-"+uuid.NewString()+"-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := f.cleanupFunc(tmp.Name())

	maxSize := f.config.GetMaxFileSize()
	written, err := io.Copy(tmp, io.LimitReader(body, maxSize+1))
	if err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to read content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	if written > maxSize {
		cleanup()
		return "", nil, fmt.Errorf("content exceeds maximum size of %d bytes", maxSize)
	}
	return tmp.Name(), cleanup, nil
}

func (f *TempPDFFetcher) cleanupFunc(path string) func() {
	return func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			f.logger.Warn("Failed to remove temp file", "path", path, "error", err)
		}
	}
}
