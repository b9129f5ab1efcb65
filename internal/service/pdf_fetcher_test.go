package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"ai-gateway/internal/domain"
)

// testConfig implements domain.Config for service tests
type testConfig struct {
	maxFileSize int64
}

func (c *testConfig) GetServerPort() string        { return "8080" }
func (c *testConfig) GetLogLevel() string          { return "error" }
func (c *testConfig) GetAPIKey() string            { return "secret" }
func (c *testConfig) GetOpenAIKey() string         { return "sk-test" }
func (c *testConfig) GetOpenAIBaseURL() string     { return "" }
func (c *testConfig) GetOpenAITimeout() int        { return 5 }
func (c *testConfig) GetDefaultChatModel() string  { return "gpt-4o-mini" }
func (c *testConfig) GetDefaultEmbedModel() string { return "text-embedding-3-small" }
func (c *testConfig) GetMaxFileSize() int64 {
	if c.maxFileSize > 0 {
		return c.maxFileSize
	}
	return 50 * 1024 * 1024
}

var _ domain.Config = (*testConfig)(nil)

type testLogger struct{}

func (l *testLogger) Info(msg string, fields ...interface{})             {}
func (l *testLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *testLogger) Debug(msg string, fields ...interface{})            {}
func (l *testLogger) Warn(msg string, fields ...interface{})             {}

func TestFetchURL_Success(t *testing.T) {
	content := []byte("%PDF-1.4 test content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(content)
	}))
	defer server.Close()

	fetcher := NewPDFFetcher(&testConfig{}, &testLogger{})

	path, cleanup, err := fetcher.FetchURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read staged file: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("staged content mismatch: %q", got)
	}
}

func TestFetchURL_CleanupRemovesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	fetcher := NewPDFFetcher(&testConfig{}, &testLogger{})

	path, cleanup, err := fetcher.FetchURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected staged file to be removed, stat err: %v", err)
	}
}

func TestFetchURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewPDFFetcher(&testConfig{}, &testLogger{})

	_, _, err := fetcher.FetchURL(context.Background(), server.URL+"/missing.pdf")
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestFetchURL_ConnectionRefused(t *testing.T) {
	fetcher := NewPDFFetcher(&testConfig{}, &testLogger{})

	_, _, err := fetcher.FetchURL(context.Background(), "http://127.0.0.1:1/unreachable.pdf")
	if err == nil {
		t.Fatalf("expected error for unreachable host")
	}
}

func TestFetchURL_SizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	fetcher := NewPDFFetcher(&testConfig{maxFileSize: 1024}, &testLogger{})

	_, _, err := fetcher.FetchURL(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("expected error for oversized content")
	}
}

func TestSaveUpload(t *testing.T) {
	fetcher := NewPDFFetcher(&testConfig{}, &testLogger{})

	content := []byte("uploaded bytes")
	path, cleanup, err := fetcher.SaveUpload(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read staged file: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("staged content mismatch: %q", got)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected staged file to be removed")
	}
}

func TestSaveUpload_SizeCap(t *testing.T) {
	fetcher := NewPDFFetcher(&testConfig{maxFileSize: 8}, &testLogger{})

	_, _, err := fetcher.SaveUpload(make([]byte, 16))
	if err == nil {
		t.Fatalf("expected error for oversized upload")
	}
}
