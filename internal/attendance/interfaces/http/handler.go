package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rollcall-billing/internal/attendance/application"
	attendance "rollcall-billing/internal/attendance/domain"
)

const statusMessage = "Roll Call API is running"

// Handler serves attendance submission and status routes.
type Handler struct {
	ingest *application.IngestService
	logger *log.Logger
}

// NewHandler constructs a handler.
func NewHandler(ingest *application.IngestService, logger *log.Logger) (*Handler, error) {
	if ingest == nil {
		return nil, errors.New("attendance handler: nil ingest service")
	}
	return &Handler{ingest: ingest, logger: logger}, nil
}

// ServeHTTP handles attendance routes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/attendance" && r.Method == http.MethodPost:
		h.handleSubmit(w, r)
	case r.URL.Path == "/api/v1/status" && r.Method == http.MethodGet:
		h.handleStatus(w)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type submitResponse struct {
	Success         bool   `json:"success"`
	PlayersRecorded int    `json:"playersRecorded,omitempty"`
	Error           string `json:"error,omitempty"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var submission application.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{Success: false, Error: "invalid json: " + err.Error()})
		return
	}

	result, err := h.ingest.HandleSubmission(r.Context(), submission)
	if err != nil {
		status := http.StatusBadRequest
		if !isValidationError(err) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, submitResponse{Success: false, Error: err.Error()})
		return
	}

	if h.logger != nil {
		h.logger.Printf("attendance recorded: session=%s clinic=%q players=%d",
			result.SessionID, submission.Clinic, result.PlayersRecorded)
	}
	writeJSON(w, http.StatusOK, submitResponse{Success: true, PlayersRecorded: result.PlayersRecorded})
}

func (h *Handler) handleStatus(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": statusMessage})
}

func isValidationError(err error) bool {
	return errors.Is(err, attendance.ErrEmptyDate) ||
		errors.Is(err, attendance.ErrEmptyClinic) ||
		errors.Is(err, attendance.ErrNoPlayers) ||
		errors.Is(err, attendance.ErrEmptyPlayerName)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
