package memory

import (
	"context"
	"sync"

	attendance "rollcall-billing/internal/attendance/domain"
)

// Store is an in-memory attendance store for tests.
type Store struct {
	mu   sync.RWMutex
	rows []attendance.Record
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds records to the row set.
func (s *Store) Append(ctx context.Context, records []attendance.Record) error {
	_ = ctx
	s.mu.Lock()
	s.rows = append(s.rows, records...)
	s.mu.Unlock()
	return nil
}

// All returns a copy of every stored record.
func (s *Store) All(ctx context.Context) ([]attendance.Record, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]attendance.Record, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
