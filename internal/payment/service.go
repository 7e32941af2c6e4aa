package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/athlete"
	"gymdesk/internal/logger"
	"gymdesk/internal/membership"
	"gymdesk/internal/metrics"
	"gymdesk/internal/settings"
	"gymdesk/internal/subscription"
)

var ErrInvalidStartDate = errors.New("invalid start date")

type AthleteLookup interface {
	GetAthlete(ctx context.Context, id int) (*athlete.Athlete, error)
}

type MembershipLookup interface {
	GetMembership(ctx context.Context, id int) (*membership.Membership, error)
}

type SettingsProvider interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Notifier interface {
	SendPaymentReceipt(ctx context.Context, email, name, membershipName string, amountCents int64, paidAt time.Time) error
}

type Service interface {
	Create(ctx context.Context, req PaymentRequest) (*Receipt, error)
	ListByAthlete(ctx context.Context, athleteID, limit, offset int) ([]Payment, error)
}

type service struct {
	repo        Repository
	athletes    AthleteLookup
	memberships MembershipLookup
	settings    SettingsProvider
	notifier    Notifier
	now         func() time.Time
}

// NewService wires the payment service. notifier may be nil.
func NewService(repo Repository, athletes AthleteLookup, memberships MembershipLookup, sp SettingsProvider, notifier Notifier) Service {
	return &service{
		repo:        repo,
		athletes:    athletes,
		memberships: memberships,
		settings:    sp,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *service) startDate(ctx context.Context, raw string) (time.Time, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("load settings: %w", err)
	}
	if raw == "" {
		return cfg.Today(s.now()), nil
	}

	d, err := time.ParseInLocation(time.DateOnly, raw, cfg.Location())
	if err != nil {
		return time.Time{}, ErrInvalidStartDate
	}
	return d, nil
}

func (s *service) Create(ctx context.Context, req PaymentRequest) (*Receipt, error) {
	a, err := s.athletes.GetAthlete(ctx, req.AthleteID)
	if err != nil {
		return nil, err
	}

	plan, err := s.memberships.GetMembership(ctx, req.MembershipID)
	if err != nil {
		return nil, err
	}

	start, err := s.startDate(ctx, req.StartDate)
	if err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		AthleteID:    a.ID,
		MembershipID: plan.ID,
		StartDate:    start,
	}
	if plan.DurationDays != nil {
		end := start.AddDate(0, 0, *plan.DurationDays)
		sub.EndDate = &end
	}

	amount := plan.PriceCents
	if req.AmountCents != nil {
		amount = *req.AmountCents
	}

	receipt, err := s.repo.CreateWithSubscription(ctx, &Payment{
		AthleteID:    a.ID,
		MembershipID: plan.ID,
		AmountCents:  amount,
		Method:       Method(req.Method),
		Note:         req.Note,
	}, sub)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	metrics.RecordPayment(req.Method)
	metrics.RecordSubscription(plan.Name)
	logger.Info("payment recorded",
		"payment_id", receipt.Payment.ID,
		"athlete_id", a.ID,
		"membership", plan.Name,
		"amount_cents", amount,
	)

	if s.notifier != nil && a.Email != nil && *a.Email != "" {
		if err := s.notifier.SendPaymentReceipt(ctx, *a.Email, a.FirstName, plan.Name, amount, receipt.Payment.PaidAt); err != nil {
			logger.Warn("payment receipt not queued", "payment_id", receipt.Payment.ID, "error", err)
		}
	}

	return receipt, nil
}

func (s *service) ListByAthlete(ctx context.Context, athleteID, limit, offset int) ([]Payment, error) {
	return s.repo.ListByAthlete(ctx, athleteID, limit, offset)
}
