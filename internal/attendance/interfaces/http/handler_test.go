package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rollcall-billing/internal/attendance/application"
	"rollcall-billing/internal/attendance/infrastructure/memory"
)

func newTestHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ingest, err := application.NewIngestService(store, nil)
	if err != nil {
		t.Fatalf("new ingest service: %v", err)
	}
	handler, err := NewHandler(ingest, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, store
}

func postAttendance(handler *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestSubmit_ObjectPlayers(t *testing.T) {
	handler, store := newTestHandler(t)

	resp := postAttendance(handler, `{
		"date": "1/05/2026",
		"clinic": "Red Ball",
		"coaches": ["Coach Dana"],
		"players": [{"name": "Smith, Alice", "status": "M"}, {"name": "Jones, Carl", "status": "G"}]
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body submitResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.PlayersRecorded != 2 {
		t.Fatalf("unexpected response: %+v", body)
	}

	records, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
}

func TestSubmit_LegacyStringPlayers(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := postAttendance(handler, `{
		"date": "1/05/2026",
		"clinic": "Red Ball",
		"players": ["Smith, Alice"]
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSubmit_InvalidJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := postAttendance(handler, `{"date": `)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body submitResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success || body.Error == "" {
		t.Fatalf("expected an error response, got %+v", body)
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	handler, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing date", `{"clinic": "Red Ball", "players": ["Smith, Alice"]}`},
		{"missing clinic", `{"date": "1/05/2026", "players": ["Smith, Alice"]}`},
		{"no players", `{"date": "1/05/2026", "clinic": "Red Ball", "players": []}`},
		{"blank player", `{"date": "1/05/2026", "clinic": "Red Ball", "players": [""]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if resp := postAttendance(handler, tc.body); resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != statusMessage {
		t.Fatalf("unexpected status message: %q", body["status"])
	}
}

func TestUnknownRoute(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
