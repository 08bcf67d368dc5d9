package auth

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func signedIngestRequest(secret []byte, body string, at time.Time) *http.Request {
	timestamp := fmt.Sprintf("%d", at.Unix())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", bytes.NewBufferString(body))
	req.Header.Set("X-Ingest-Timestamp", timestamp)
	req.Header.Set("X-Ingest-Signature", computeIngestSignature(secret, timestamp, []byte(body)))
	return req
}

func TestIngestWrap_ValidSignature(t *testing.T) {
	secret := []byte("shared")
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	})
	handler := NewIngestAuthMiddleware(secret, 5*time.Minute).Wrap(inner)

	body := `{"clinic":"Red Ball"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, signedIngestRequest(secret, body, time.Now()))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if seen != body {
		t.Fatalf("body must be replayable after verification, got %q", seen)
	}
}

func TestIngestWrap_MissingHeaders(t *testing.T) {
	handler := NewIngestAuthMiddleware([]byte("shared"), 5*time.Minute).Wrap(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", bytes.NewBufferString("{}"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIngestWrap_WrongSecret(t *testing.T) {
	handler := NewIngestAuthMiddleware([]byte("shared"), 5*time.Minute).Wrap(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, signedIngestRequest([]byte("other"), "{}", time.Now()))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIngestWrap_StaleTimestamp(t *testing.T) {
	secret := []byte("shared")
	handler := NewIngestAuthMiddleware(secret, 5*time.Minute).Wrap(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, signedIngestRequest(secret, "{}", time.Now().Add(-time.Hour)))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIngestWrap_EmptySecretDisablesValidation(t *testing.T) {
	handler := NewIngestAuthMiddleware(nil, 5*time.Minute).Wrap(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", bytes.NewBufferString("{}"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with validation disabled, got %d", resp.Code)
	}
}
