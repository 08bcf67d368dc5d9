package pricing

import (
	"os"
	"path/filepath"
	"testing"

	attendance "rollcall-billing/internal/attendance/domain"
)

const redBall = "Red Ball (Ages 8 and Under)"

func TestCharge_ZeroSessionsIsFree(t *testing.T) {
	table := Default()
	for _, clinic := range table.Clinics() {
		if got := table.Charge(clinic, attendance.StatusMember, 0); got != 0 {
			t.Fatalf("%s member 0 sessions: expected 0, got %v", clinic, got)
		}
		if got := table.Charge(clinic, attendance.StatusGuest, 0); got != 0 {
			t.Fatalf("%s guest 0 sessions: expected 0, got %v", clinic, got)
		}
	}
}

func TestCharge_NegativeSessionsIsFree(t *testing.T) {
	if got := Default().Charge(redBall, attendance.StatusMember, -3); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestCharge_UnknownClinicFailsOpen(t *testing.T) {
	if got := Default().Charge("Purple Ball", attendance.StatusMember, 5); got != 0 {
		t.Fatalf("expected 0 for unknown clinic, got %v", got)
	}
}

func TestCharge_PlateauLookup(t *testing.T) {
	table := Default()
	// The member curve plateaus: session 7 costs the same as session 6.
	if got := table.Charge(redBall, attendance.StatusMember, 7); got != 90 {
		t.Fatalf("expected 90, got %v", got)
	}
	if got := table.Charge(redBall, attendance.StatusMember, 6); got != 90 {
		t.Fatalf("expected 90, got %v", got)
	}
}

func TestCharge_BeyondTableUsesPerSessionRate(t *testing.T) {
	table := Default()
	// Curve tops out at 10 sessions for 135; two extra sessions at 15 each.
	if got := table.Charge(redBall, attendance.StatusMember, 12); got != 165 {
		t.Fatalf("expected 165, got %v", got)
	}
}

func TestCharge_NonDecreasing(t *testing.T) {
	table := Default()
	for _, clinic := range table.Clinics() {
		for _, status := range []attendance.Status{attendance.StatusMember, attendance.StatusGuest} {
			prev := 0.0
			for sessions := 0; sessions <= 25; sessions++ {
				got := table.Charge(clinic, status, sessions)
				if got < prev {
					t.Fatalf("%s %s: charge decreased at %d sessions (%v < %v)", clinic, status, sessions, got, prev)
				}
				prev = got
			}
		}
	}
}

func TestCharge_GuestCurve(t *testing.T) {
	if got := Default().Charge(redBall, attendance.StatusGuest, 3); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
}

func TestNewTable_RejectsBadCurves(t *testing.T) {
	cases := map[string]ClinicPricing{
		"nonzero start": {Member: []float64{5, 10}, Guest: []float64{0, 10}},
		"decreasing":    {Member: []float64{0, 20, 10}, Guest: []float64{0, 10, 20}},
		"empty guest":   {Member: []float64{0, 10}, Guest: nil},
		"negative rate": {Member: []float64{0, 10}, Guest: []float64{0, 10}, MemberRate: -1},
	}
	for name, entry := range cases {
		if _, err := NewTable(map[string]ClinicPricing{"Clinic": entry}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := []byte(`
clinics:
  "Mini Ball":
    member: [0, 10, 20]
    guest: [0, 12, 24]
    member_rate: 10
    guest_rate: 12
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := table.Charge("Mini Ball", attendance.StatusMember, 2); got != 20 {
		t.Fatalf("expected 20, got %v", got)
	}
	if got := table.Charge("Mini Ball", attendance.StatusGuest, 4); got != 24+2*12 {
		t.Fatalf("expected 48, got %v", got)
	}
	if got := table.Charge(redBall, attendance.StatusMember, 2); got != 0 {
		t.Fatalf("defaults should not leak into file-based tables, got %v", got)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if got := table.Charge(redBall, attendance.StatusMember, 1); got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}
