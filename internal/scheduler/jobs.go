package scheduler

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/metrics"
	"gymdesk/internal/subscription"
)

const jobTimeout = 5 * time.Minute

type Expirer interface {
	ExpireDue(ctx context.Context) (*subscription.ExpiryReport, error)
}

type QueueReporter interface {
	QueueLength(ctx context.Context) int64
}

// Jobs holds the scheduled task bodies.
type Jobs struct {
	expirer Expirer
	queue   QueueReporter
	logger  *slog.Logger
}

// NewJobs creates a job runner. queue may be nil.
func NewJobs(expirer Expirer, queue QueueReporter, logger *slog.Logger) *Jobs {
	return &Jobs{expirer: expirer, queue: queue, logger: logger}
}

// ExpireSubscriptions runs the nightly subscription sweep.
func (j *Jobs) ExpireSubscriptions() {
	j.logger.Info("starting subscription expiry job")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := j.expirer.ExpireDue(ctx)
	if err != nil {
		j.logger.Error("subscription expiry job failed", "error", err)
		return
	}

	j.logger.Info("subscription expiry job finished",
		"expired_by_date", report.ExpiredByDate,
		"expired_by_count", report.ExpiredByCount,
		"athletes_deactivated", report.AthletesDeactivated,
		"notifications_queued", report.NotificationsQueued,
	)
}

// ReportEmailQueue publishes the pending email count as a gauge.
func (j *Jobs) ReportEmailQueue() {
	if j.queue == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics.SetEmailQueueLength(j.queue.QueueLength(ctx))
}
