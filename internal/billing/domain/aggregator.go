package billing

import (
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	attendance "rollcall-billing/internal/attendance/domain"
)

const groupKeySeparator = "|||"

// ChargeResolver resolves the total charge for a clinic, status and
// monthly session count.
type ChargeResolver interface {
	Charge(clinic string, status attendance.Status, sessions int) float64
}

// Aggregator folds attendance rows into a monthly report. It holds no
// mutable state; given identical rows and period the output is
// identical.
type Aggregator struct {
	charges  ChargeResolver
	collator *collate.Collator
	logger   *log.Logger
}

// NewAggregator constructs an aggregator.
func NewAggregator(charges ChargeResolver, logger *log.Logger) (*Aggregator, error) {
	if charges == nil {
		return nil, ErrNilPricingTable
	}
	return &Aggregator{
		charges:  charges,
		collator: collate.New(language.AmericanEnglish),
		logger:   logger,
	}, nil
}

type tally struct {
	name     string
	clinic   string
	status   attendance.Status
	sessions int
}

// Aggregate builds the report for one period. Rows outside the period,
// rows missing a player or clinic and rows whose date cannot be parsed
// are skipped; none of them abort the run. Player and clinic names are
// grouped as exact strings: two spellings of one player stay two line
// items, a fidelity limitation carried over from the source data.
func (a *Aggregator) Aggregate(records []attendance.Record, period Period) *MonthlyReport {
	groups := make(map[string]*tally)
	for _, record := range records {
		if record.PlayerName == "" || record.Clinic == "" {
			continue
		}
		date, ok := parseRowDate(record.Date)
		if !ok {
			if a.logger != nil {
				a.logger.Printf("billing aggregate: skipping row with unparsable date %q", record.Date)
			}
			continue
		}
		if !period.Contains(date) {
			continue
		}

		key := record.PlayerName + groupKeySeparator + record.Clinic
		group, exists := groups[key]
		if !exists {
			// First-seen status wins when records in a group disagree.
			group = &tally{
				name:   record.PlayerName,
				clinic: record.Clinic,
				status: record.Status,
			}
			groups[key] = group
		}
		group.sessions++
	}

	items := make([]LineItem, 0, len(groups))
	lastNames := make(map[string]map[string]struct{})
	for _, group := range groups {
		lastName := strings.TrimSpace(strings.SplitN(group.name, ",", 2)[0])
		if lastNames[lastName] == nil {
			lastNames[lastName] = make(map[string]struct{})
		}
		lastNames[lastName][group.name] = struct{}{}

		items = append(items, LineItem{
			PlayerName:  group.name,
			Clinic:      group.clinic,
			Status:      group.status,
			Sessions:    group.sessions,
			TotalCharge: a.charges.Charge(group.clinic, group.status, group.sessions),
			LastName:    lastName,
		})
	}

	// A surname shared by two or more distinct full names marks every
	// line item carrying it for manual sibling-discount review. The
	// flag never changes the charge.
	for i := range items {
		if len(lastNames[items[i].LastName]) > 1 {
			items[i].SiblingFlag = true
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if cmp := a.collator.CompareString(items[i].PlayerName, items[j].PlayerName); cmp != 0 {
			return cmp < 0
		}
		return a.collator.CompareString(items[i].Clinic, items[j].Clinic) < 0
	})

	report := &MonthlyReport{
		Period:       period,
		Items:        items,
		TotalPlayers: len(items),
	}
	for _, item := range items {
		report.TotalRevenue += item.TotalCharge
	}
	return report
}

var rowDateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
}

func parseRowDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range rowDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
