package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewUnauthorizedError("no key"), http.StatusUnauthorized},
		{NewDownloadError("download failed", stderrors.New("404")), http.StatusBadRequest},
		{NewUpstreamError("provider failed", stderrors.New("boom")), http.StatusInternalServerError},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := GetStatusCode(tt.err); got != tt.want {
			t.Fatalf("%s: expected status %d, got %d", tt.err.Type, tt.want, got)
		}
	}
}

func TestGetStatusCode_PlainError(t *testing.T) {
	if got := GetStatusCode(stderrors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("expected plain errors to map to 500, got %d", got)
	}
}

func TestGetMessage_IncludesCause(t *testing.T) {
	err := NewDownloadError("Failed to download PDF", stderrors.New("unexpected status 404 Not Found"))
	msg := GetMessage(err)
	if !strings.Contains(msg, "Failed to download PDF") || !strings.Contains(msg, "404") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func Test_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewUpstreamError("wrapped", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
}
