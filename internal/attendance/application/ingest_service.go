package application

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	attendance "rollcall-billing/internal/attendance/domain"
	"rollcall-billing/internal/observability/metrics"
)

// Submission is one roll-call posting: a clinic session with the
// coaches present and the players to record.
type Submission struct {
	Date    string        `json:"date"`
	Clinic  string        `json:"clinic"`
	Coaches []string      `json:"coaches"`
	Players []PlayerInput `json:"players"`
}

// PlayerInput accepts either the current object form {name, status} or
// the legacy bare-name string form, which defaults to member status.
type PlayerInput struct {
	Name   string
	Status string
}

// UnmarshalJSON decodes both accepted player forms.
func (p *PlayerInput) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		p.Status = ""
		return nil
	}
	var entry struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}
	p.Name = entry.Name
	p.Status = entry.Status
	return nil
}

// Result reports a recorded submission.
type Result struct {
	SessionID       string
	PlayersRecorded int
}

// IngestService records attendance submissions into the row store.
// The store offers no transactional rollback, so a failure partway
// through an append may leave a partial set of rows behind.
type IngestService struct {
	store  attendance.Store
	logger *log.Logger
}

// NewIngestService constructs the service.
func NewIngestService(store attendance.Store, logger *log.Logger) (*IngestService, error) {
	if store == nil {
		return nil, errors.New("ingest service: nil store")
	}
	return &IngestService{store: store, logger: logger}, nil
}

// HandleSubmission normalizes and appends one session of attendance.
func (s *IngestService) HandleSubmission(ctx context.Context, submission Submission) (*Result, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveIngest(result, time.Since(start))
	}()

	players := make([]attendance.PlayerEntry, 0, len(submission.Players))
	for _, input := range submission.Players {
		if input.Name == "" {
			result = metrics.ResultError
			metrics.IncIngestError("empty_player_name")
			return nil, attendance.ErrEmptyPlayerName
		}
		players = append(players, attendance.PlayerEntry{
			Name:   input.Name,
			Status: attendance.ParseStatus(input.Status),
		})
	}

	session, err := attendance.NewSession(submission.Date, submission.Clinic, submission.Coaches, players)
	if err != nil {
		result = metrics.ResultError
		metrics.IncIngestError("invalid_submission")
		return nil, err
	}

	if err := s.store.Append(ctx, session.Records()); err != nil {
		result = metrics.ResultError
		metrics.IncIngestError("store_append")
		if s.logger != nil {
			s.logger.Printf("ingest: append failed for session %s: %v", session.ID, err)
		}
		return nil, err
	}

	return &Result{
		SessionID:       session.ID.String(),
		PlayersRecorded: len(players),
	}, nil
}
