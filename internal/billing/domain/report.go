package billing

import (
	"context"

	attendance "rollcall-billing/internal/attendance/domain"
)

// LineItem is one billed (player, clinic) pair for a period.
type LineItem struct {
	PlayerName  string
	Clinic      string
	Status      attendance.Status
	Sessions    int
	TotalCharge float64
	LastName    string
	SiblingFlag bool
}

// MonthlyReport is the full billing output for one period, rebuilt from
// scratch on every run. Items are sorted by player name then clinic.
type MonthlyReport struct {
	Period       Period
	Items        []LineItem
	TotalPlayers int
	TotalRevenue float64
}

// ReportWriter persists a monthly report, replacing any prior report
// for the same period wholesale.
type ReportWriter interface {
	Replace(ctx context.Context, report *MonthlyReport) error
}
