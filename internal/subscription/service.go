package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/db"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/settings"
)

var ErrNoActiveSubscription = errors.New("no active subscription")

type SettingsProvider interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// Notifier queues the "your plan expired" message.
type Notifier interface {
	SendSubscriptionExpired(ctx context.Context, email, name, membershipName string) error
}

type Service interface {
	ListForAthlete(ctx context.Context, athleteID int) ([]Detail, error)
	GetActive(ctx context.Context, athleteID int) (*Detail, error)
	// ExpireDue runs the date and count based expiry sweep.
	ExpireDue(ctx context.Context) (*ExpiryReport, error)
}

type service struct {
	repo     Repository
	settings SettingsProvider
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, sp SettingsProvider, notifier Notifier) Service {
	return &service{repo: repo, settings: sp, notifier: notifier, now: time.Now}
}

func (s *service) ListForAthlete(ctx context.Context, athleteID int) ([]Detail, error) {
	return s.repo.ListByAthlete(ctx, athleteID)
}

func (s *service) GetActive(ctx context.Context, athleteID int) (*Detail, error) {
	d, err := s.repo.GetActive(ctx, athleteID)
	if db.IsNotFound(err) {
		return nil, ErrNoActiveSubscription
	}
	if err != nil {
		return nil, fmt.Errorf("load active subscription: %w", err)
	}
	return d, nil
}

func (s *service) ExpireDue(ctx context.Context) (*ExpiryReport, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cutoff := cfg.Today(now).AddDate(0, 0, -cfg.ExpiryGraceDays)

	byDate, err := s.repo.ExpireEndedBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("expire by date: %w", err)
	}
	metrics.RecordSubscriptionsExpired("date", len(byDate))

	byCount, err := s.repo.ExpireExhausted(ctx)
	if err != nil {
		return nil, fmt.Errorf("expire by count: %w", err)
	}
	metrics.RecordSubscriptionsExpired("count", len(byCount))

	report := &ExpiryReport{
		ExpiredByDate:  len(byDate),
		ExpiredByCount: len(byCount),
		Cutoff:         cutoff.Format(time.DateOnly),
		RanAt:          now,
	}

	expired := append(byDate, byCount...)

	if cfg.DeactivateOnExpiry && len(expired) > 0 {
		ids := make([]int, 0, len(expired))
		for _, e := range expired {
			ids = append(ids, e.AthleteID)
		}

		n, err := s.repo.DeactivateAthletesWithoutActive(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("deactivate athletes: %w", err)
		}
		report.AthletesDeactivated = n
		metrics.RecordAthletesDeactivated(n)
	}

	for _, e := range expired {
		if e.Email == nil || *e.Email == "" || s.notifier == nil {
			continue
		}
		if err := s.notifier.SendSubscriptionExpired(ctx, *e.Email, e.FirstName, e.MembershipName); err != nil {
			logger.Warn("expiry notification not queued", "subscription_id", e.SubscriptionID, "error", err)
			continue
		}
		report.NotificationsQueued++
	}

	logger.Info("subscription expiry sweep finished",
		"cutoff", report.Cutoff,
		"expired_by_date", report.ExpiredByDate,
		"expired_by_count", report.ExpiredByCount,
		"athletes_deactivated", report.AthletesDeactivated)

	return report, nil
}
