package pricing

import (
	"errors"
	"fmt"

	attendance "rollcall-billing/internal/attendance/domain"
)

// ClinicPricing holds the charge curves for one clinic. Member and
// Guest are cumulative totals indexed by session count: index N is the
// total charged for N sessions in a month, not N times a unit price.
// The curves may plateau to model bulk discounts. MemberRate and
// GuestRate apply per session beyond the last tabulated count.
type ClinicPricing struct {
	Member     []float64 `yaml:"member"`
	Guest      []float64 `yaml:"guest"`
	MemberRate float64   `yaml:"member_rate"`
	GuestRate  float64   `yaml:"guest_rate"`
}

// Table resolves total charges by clinic, status and session count.
type Table struct {
	clinics map[string]ClinicPricing
}

// NewTable constructs a validated pricing table.
func NewTable(clinics map[string]ClinicPricing) (*Table, error) {
	if len(clinics) == 0 {
		return nil, errors.New("pricing: empty table")
	}
	for clinic, entry := range clinics {
		if err := validateCurve(clinic, "member", entry.Member); err != nil {
			return nil, err
		}
		if err := validateCurve(clinic, "guest", entry.Guest); err != nil {
			return nil, err
		}
		if entry.MemberRate < 0 || entry.GuestRate < 0 {
			return nil, fmt.Errorf("pricing: %s: negative per-session rate", clinic)
		}
	}
	return &Table{clinics: clinics}, nil
}

func validateCurve(clinic, kind string, curve []float64) error {
	if len(curve) == 0 {
		return fmt.Errorf("pricing: %s: empty %s curve", clinic, kind)
	}
	if curve[0] != 0 {
		return fmt.Errorf("pricing: %s: %s curve must start at 0", clinic, kind)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] {
			return fmt.Errorf("pricing: %s: %s curve decreases at index %d", clinic, kind, i)
		}
	}
	return nil
}

// Charge returns the total charged for the given session count.
// Unknown clinics charge zero rather than failing, so one bad data row
// cannot abort a whole billing run. Within the curve the value is a
// direct lookup; beyond it the last tabulated total is extended at the
// flat per-session rate.
func (t *Table) Charge(clinic string, status attendance.Status, sessions int) float64 {
	entry, ok := t.clinics[clinic]
	if !ok {
		return 0
	}
	if sessions <= 0 {
		return 0
	}

	curve := entry.Member
	rate := entry.MemberRate
	if status == attendance.StatusGuest {
		curve = entry.Guest
		rate = entry.GuestRate
	}

	if sessions < len(curve) {
		return curve[sessions]
	}
	lastIndex := len(curve) - 1
	extra := sessions - lastIndex
	return curve[lastIndex] + float64(extra)*rate
}

// Clinics lists the configured clinic names.
func (t *Table) Clinics() []string {
	names := make([]string, 0, len(t.clinics))
	for name := range t.clinics {
		names = append(names, name)
	}
	return names
}
