package application

import (
	"context"
	"errors"
	"log"
	"time"

	attendance "rollcall-billing/internal/attendance/domain"
	billing "rollcall-billing/internal/billing/domain"
	"rollcall-billing/internal/observability/metrics"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// BillingService runs monthly billing: one full read of the attendance
// store, aggregation, and a wholesale replace of the period's report.
type BillingService struct {
	store      attendance.Store
	aggregator *billing.Aggregator
	writer     billing.ReportWriter
	clock      Clock
	logger     *log.Logger
}

// NewBillingService constructs the service.
func NewBillingService(
	store attendance.Store,
	aggregator *billing.Aggregator,
	writer billing.ReportWriter,
	clock Clock,
	logger *log.Logger,
) (*BillingService, error) {
	if store == nil {
		return nil, billing.ErrNilStore
	}
	if aggregator == nil {
		return nil, errors.New("billing service: nil aggregator")
	}
	if writer == nil {
		return nil, billing.ErrNilReportWriter
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &BillingService{
		store:      store,
		aggregator: aggregator,
		writer:     writer,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Generate builds and persists the report for a period. Month and year
// of zero default to the current period. Returns ErrNoAttendanceData
// when the store holds no rows at all; the run exits early without
// writing a report.
func (s *BillingService) Generate(ctx context.Context, month, year int) (*billing.MonthlyReport, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveBillingRun(result, time.Since(start))
	}()

	period, err := s.resolvePeriod(month, year)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	report, err := s.buildReport(ctx, period)
	if err != nil {
		if !errors.Is(err, billing.ErrNoAttendanceData) {
			result = metrics.ResultError
		}
		return nil, err
	}

	if err := s.writer.Replace(ctx, report); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	metrics.SetReportTotals(report.TotalPlayers, report.TotalRevenue)
	if s.logger != nil {
		s.logger.Printf("Billing report generated for %s: %d line items, $%.2f total",
			period.Label(), report.TotalPlayers, report.TotalRevenue)
	}
	return report, nil
}

// GenerateLastMonth runs billing for the period before the current one,
// rolling January back to December of the prior year.
func (s *BillingService) GenerateLastMonth(ctx context.Context) (*billing.MonthlyReport, error) {
	period := billing.LastPeriod(s.clock.Now())
	return s.Generate(ctx, int(period.Month), period.Year)
}

// Preview aggregates a period without touching the billing store.
func (s *BillingService) Preview(ctx context.Context, month, year int) (*billing.MonthlyReport, error) {
	period, err := s.resolvePeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.buildReport(ctx, period)
}

func (s *BillingService) resolvePeriod(month, year int) (billing.Period, error) {
	now := s.clock.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return billing.NewPeriod(month, year)
}

func (s *BillingService) buildReport(ctx context.Context, period billing.Period) (*billing.MonthlyReport, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		if s.logger != nil {
			s.logger.Printf("billing run: no attendance data found, skipping %s", period.Label())
		}
		return nil, billing.ErrNoAttendanceData
	}
	return s.aggregator.Aggregate(records, period), nil
}
