package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	billing "rollcall-billing/internal/billing/domain"
)

// DefaultCronSpec runs billing for last month on the first of each
// month at midnight.
const DefaultCronSpec = "0 0 1 * *"

const scheduledRunTimeout = 5 * time.Minute

// Scheduler owns the monthly billing trigger. Registering again
// replaces the previous trigger, so repeated startup wiring never
// stacks duplicate jobs.
type Scheduler struct {
	cron    *cron.Cron
	entryID cron.EntryID
	service *BillingService
	spec    string
	logger  *log.Logger
}

// NewScheduler constructs a scheduler around an existing cron runner.
func NewScheduler(runner *cron.Cron, service *BillingService, spec string, logger *log.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, errors.New("billing scheduler: nil cron runner")
	}
	if service == nil {
		return nil, errors.New("billing scheduler: nil billing service")
	}
	if spec == "" {
		spec = DefaultCronSpec
	}
	return &Scheduler{cron: runner, service: service, spec: spec, logger: logger}, nil
}

// Register installs the monthly trigger, removing any prior entry.
func (s *Scheduler) Register() error {
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}
	id, err := s.cron.AddFunc(s.spec, s.runOnce)
	if err != nil {
		return err
	}
	s.entryID = id
	return nil
}

// Start begins the cron loop.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
	defer cancel()

	_, err := s.service.GenerateLastMonth(ctx)
	if err == nil {
		return
	}
	if s.logger == nil {
		return
	}
	if errors.Is(err, billing.ErrNoAttendanceData) {
		s.logger.Printf("billing schedule: no attendance data, nothing to bill")
		return
	}
	s.logger.Printf("billing schedule error: %v", err)
}
