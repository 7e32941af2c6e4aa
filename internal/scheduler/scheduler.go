package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const queueReportSchedule = "@every 1m"

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron           *cron.Cron
	jobs           *Jobs
	logger         *slog.Logger
	expirySchedule string
}

// New creates a scheduler. Cron expressions use the standard five fields and
// are evaluated in loc.
func New(jobs *Jobs, logger *slog.Logger, expirySchedule string, loc *time.Location) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Scheduler{
		cron:           c,
		jobs:           jobs,
		logger:         logger,
		expirySchedule: expirySchedule,
	}
}

// Start registers the jobs and starts the cron scheduler. A bad expiry
// schedule is returned so startup can fail loudly.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.expirySchedule, s.jobs.ExpireSubscriptions); err != nil {
		return err
	}
	s.logger.Info("scheduled subscription expiry job", "schedule", s.expirySchedule)

	if _, err := s.cron.AddFunc(queueReportSchedule, s.jobs.ReportEmailQueue); err != nil {
		s.logger.Error("failed to schedule email queue report", "error", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops scheduling and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
