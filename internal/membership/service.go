package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/db"
	"gymdesk/internal/logger"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrInvalidPlan        = errors.New("a plan needs duration_days or total_classes")
)

type Service interface {
	CreateMembership(ctx context.Context, req MembershipRequest) (*Membership, error)
	GetMembership(ctx context.Context, id int) (*Membership, error)
	ListMemberships(ctx context.Context, includeInactive bool) ([]Membership, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateMembership(ctx context.Context, req MembershipRequest) (*Membership, error) {
	if req.DurationDays == nil && req.TotalClasses == nil {
		return nil, ErrInvalidPlan
	}

	m, err := s.repo.Create(ctx, &Membership{
		Name:         strings.TrimSpace(req.Name),
		PriceCents:   req.PriceCents,
		DurationDays: req.DurationDays,
		TotalClasses: req.TotalClasses,
		WeeklyLimit:  req.WeeklyLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}

	logger.Info("membership created", "membership_id", m.ID, "name", m.Name)
	return m, nil
}

func (s *service) GetMembership(ctx context.Context, id int) (*Membership, error) {
	m, err := s.repo.GetByID(ctx, id)
	if db.IsNotFound(err) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load membership %d: %w", id, err)
	}
	return m, nil
}

func (s *service) ListMemberships(ctx context.Context, includeInactive bool) ([]Membership, error) {
	return s.repo.List(ctx, includeInactive)
}
