package snapshot

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a generation once at startup and then on a five-field cron
// cadence. It is process-wide: started once at boot and stopped only by
// context cancellation at shutdown.
type Scheduler struct {
	runner  BatchRunner
	cadence string
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler. cadence is a standard five-field cron
// expression, e.g. "0 * * * *" for the top of every hour.
func NewScheduler(runner BatchRunner, cadence string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		runner:  runner,
		cadence: cadence,
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled. The startup generation covers the
// empty-on-deploy case. A malformed cadence is logged and disables only the
// recurring trigger; the process keeps serving requests without it.
func (s *Scheduler) Run(ctx context.Context) {
	s.tick()

	c := cron.New()
	if _, err := c.AddFunc(s.cadence, s.tick); err != nil {
		s.logger.Error("scheduler: invalid cadence, recurring generation disabled",
			"cadence", s.cadence, "error", err)
		<-ctx.Done()
		return
	}

	c.Start()
	s.logger.Info("scheduler: started", "cadence", s.cadence)

	<-ctx.Done()
	// Stop waits for a running tick to finish; generations are never
	// aborted mid-transaction.
	<-c.Stop().Done()
	s.logger.Info("scheduler: stopped")
}

func (s *Scheduler) tick() {
	outcome := s.runner.Generate()
	switch outcome.Status {
	case StatusFailed:
		s.logger.Warn("scheduler: generation failed", "reason", outcome.Reason)
	case StatusSkipped:
		s.logger.Info("scheduler: generation skipped", "reason", outcome.Reason)
	default:
		s.logger.Info("scheduler: generation succeeded", "count", outcome.Count)
	}
}
