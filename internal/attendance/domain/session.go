package attendance

import "github.com/google/uuid"

// PlayerEntry is one player in a session with a resolved status.
type PlayerEntry struct {
	Name   string
	Status Status
}

// Session is one clinic meeting: a date, a coach list and the players
// present. It is the unit an ingest submission describes; the row store
// flattens it into per-player records.
type Session struct {
	ID      uuid.UUID
	Date    string
	Clinic  string
	Coaches []string
	Players []PlayerEntry
}

// NewSession builds a session with a fresh identity.
func NewSession(date, clinic string, coaches []string, players []PlayerEntry) (*Session, error) {
	if date == "" {
		return nil, ErrEmptyDate
	}
	if clinic == "" {
		return nil, ErrEmptyClinic
	}
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	return &Session{
		ID:      uuid.New(),
		Date:    date,
		Clinic:  clinic,
		Coaches: coaches,
		Players: players,
	}, nil
}

// Records flattens the session into per-player rows. Coaches appear
// only on the first row, preserving the sheet schema.
func (s *Session) Records() []Record {
	records := make([]Record, 0, len(s.Players))
	for i, player := range s.Players {
		record := Record{
			Date:       s.Date,
			Clinic:     s.Clinic,
			PlayerName: player.Name,
			Status:     player.Status,
		}
		if i == 0 {
			record.Coaches = s.Coaches
		}
		records = append(records, record)
	}
	return records
}
