package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	attendance "rollcall-billing/internal/attendance/domain"
)

const defaultAttendanceTable = "attendance_rows"

// Store persists attendance rows in postgres with the same five-column
// schema as the spreadsheet backend. Rows keep the raw date string so
// both backends feed the aggregator identically.
type Store struct {
	db    *sql.DB
	table string
}

// Option configures the store.
type Option func(*Store)

// WithTable overrides the attendance table name.
func WithTable(table string) Option {
	return func(s *Store) {
		if table != "" {
			s.table = table
		}
	}
}

// NewStore constructs a store.
func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, table: defaultAttendanceTable}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append inserts records one row at a time. Inserts are not wrapped in
// a transaction: a failure partway leaves the earlier rows in place,
// matching the append-only sheet semantics.
func (s *Store) Append(ctx context.Context, records []attendance.Record) error {
	if s == nil || s.db == nil {
		return errors.New("attendance postgres: nil db")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (attend_date, clinic, coaches, player_name, status)
VALUES ($1, $2, $3, $4, $5)`, s.table)

	for _, record := range records {
		_, err := s.db.ExecContext(ctx, query,
			record.Date, record.Clinic, record.CoachList(), record.PlayerName, string(record.Status))
		if err != nil {
			return err
		}
	}
	return nil
}

// All returns every row in insertion order.
func (s *Store) All(ctx context.Context) ([]attendance.Record, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("attendance postgres: nil db")
	}
	query := fmt.Sprintf(`
SELECT attend_date, clinic, coaches, player_name, status
FROM %s
ORDER BY id ASC`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var date, clinic, coaches, player string
		var status sql.NullString
		if err := rows.Scan(&date, &clinic, &coaches, &player, &status); err != nil {
			return nil, err
		}
		records = append(records, attendance.Record{
			Date:       date,
			Clinic:     clinic,
			Coaches:    splitCoaches(coaches),
			PlayerName: player,
			Status:     attendance.ParseStatus(status.String),
		})
	}
	return records, rows.Err()
}

func splitCoaches(value string) []string {
	if value == "" {
		return nil
	}
	var coaches []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			coaches = append(coaches, part)
		}
	}
	return coaches
}
