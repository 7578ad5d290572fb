package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/observability"
)

// OverdueSweeper periodically scans for installments past their due date,
// publishes an overdue event per installment and updates the overdue gauge.
type OverdueSweeper struct {
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
	metrics         *observability.Metrics
	logger          *slog.Logger
	cron            *cron.Cron
}

// NewOverdueSweeper creates a sweeper; call Start to schedule it.
func NewOverdueSweeper(
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *OverdueSweeper {
	return &OverdueSweeper{
		installmentRepo: installmentRepo,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
		cron:            cron.New(),
	}
}

// Start registers the sweep on the given cron expression and starts the
// scheduler in its own goroutine.
func (s *OverdueSweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Sweep(ctx, time.Now().UTC())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("overdue sweep scheduled", "schedule", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *OverdueSweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep runs one pass. Exposed so it can be triggered outside the schedule.
func (s *OverdueSweeper) Sweep(ctx context.Context, now time.Time) {
	overdue, err := s.installmentRepo.FindOverdue(ctx, now)
	if err != nil {
		s.logger.Error("overdue sweep failed", "error", err)
		return
	}

	s.metrics.OverdueInstallments.Set(float64(len(overdue)))
	if len(overdue) == 0 {
		return
	}

	evts := make([]event.DomainEvent, 0, len(overdue))
	for _, inst := range overdue {
		evts = append(evts, event.NewInstallmentOverdue(
			inst.ID, "", inst.LoanID, inst.DueDate, inst.Outstanding(),
		))
	}
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		s.logger.Error("publish overdue events failed", "error", err)
		return
	}

	s.logger.Info("overdue sweep complete", "overdue_count", len(overdue))
}
