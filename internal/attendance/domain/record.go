package attendance

import "strings"

// Status is the billing status of a player ("M" member, "G" guest).
type Status string

const (
	StatusMember Status = "M"
	StatusGuest  Status = "G"
)

// ParseStatus normalizes a raw status value. Anything other than "G"
// is treated as member, matching the legacy store defaulting.
func ParseStatus(value string) Status {
	if strings.TrimSpace(value) == string(StatusGuest) {
		return StatusGuest
	}
	return StatusMember
}

// DisplayName returns the human readable status label.
func (s Status) DisplayName() string {
	if s == StatusGuest {
		return "Guest"
	}
	return "Member"
}

// Record is one attendance row: one player at one clinic on one date.
// Date is the raw stored value; the legacy store keeps "MM/DD/YYYY"
// strings while some backends render native dates differently, so
// parsing is left to the consumers.
// Coaches are attached only to the first record of a session batch;
// the field is empty on every other record (storage-layout artifact
// of the row-oriented sheet schema).
type Record struct {
	Date       string
	Clinic     string
	Coaches    []string
	PlayerName string
	Status     Status
}

// CoachList renders the coaches column value.
func (r Record) CoachList() string {
	return strings.Join(r.Coaches, ", ")
}
