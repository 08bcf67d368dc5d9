package attendance

import "errors"

var (
	ErrEmptyDate       = errors.New("attendance: empty date")
	ErrEmptyClinic     = errors.New("attendance: empty clinic")
	ErrNoPlayers       = errors.New("attendance: no players")
	ErrEmptyPlayerName = errors.New("attendance: empty player name")
)
