package athlete

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/db"
	"gymdesk/internal/logger"

	"github.com/lib/pq"
)

const pinConstraint = "athletes_pin_key"

var (
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrInvalidPIN      = errors.New("pin must be exactly 4 digits")
	ErrPINTaken        = errors.New("pin already in use")
	ErrInvalidStatus   = errors.New("invalid athlete status")
)

type Service interface {
	CreateAthlete(ctx context.Context, req AthleteRequest) (*Athlete, error)
	UpdateAthlete(ctx context.Context, id int, req AthleteRequest) (*Athlete, error)
	GetAthlete(ctx context.Context, id int) (*Athlete, error)
	// FindByPIN returns ErrAthleteNotFound both for a malformed and an
	// unknown PIN so callers cannot tell the two apart.
	FindByPIN(ctx context.Context, pin string) (*Athlete, error)
	ListAthletes(ctx context.Context, filter ListFilter) ([]Athlete, error)
	SetStatus(ctx context.Context, id int, status Status) (*Athlete, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func fromRequest(req AthleteRequest) (*Athlete, error) {
	a := &Athlete{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     blankToNil(req.Email),
		Phone:     blankToNil(req.Phone),
		PIN:       blankToNil(req.PIN),
		Tags:      pq.StringArray{},
	}
	if a.PIN != nil && !ValidPIN(*a.PIN) {
		return nil, ErrInvalidPIN
	}

	for _, tag := range req.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			a.Tags = append(a.Tags, tag)
		}
	}
	return a, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *service) CreateAthlete(ctx context.Context, req AthleteRequest) (*Athlete, error) {
	a, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if db.IsUniqueViolation(err, pinConstraint) {
		return nil, ErrPINTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create athlete: %w", err)
	}

	logger.Info("athlete created", "athlete_id", created.ID, "has_pin", created.HasPIN())
	return created, nil
}

func (s *service) UpdateAthlete(ctx context.Context, id int, req AthleteRequest) (*Athlete, error) {
	a, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	a.ID = id

	updated, err := s.repo.Update(ctx, a)
	switch {
	case db.IsNotFound(err):
		return nil, ErrAthleteNotFound
	case db.IsUniqueViolation(err, pinConstraint):
		return nil, ErrPINTaken
	case err != nil:
		return nil, fmt.Errorf("update athlete %d: %w", id, err)
	}
	return updated, nil
}

func (s *service) GetAthlete(ctx context.Context, id int) (*Athlete, error) {
	a, err := s.repo.GetByID(ctx, id)
	if db.IsNotFound(err) {
		return nil, ErrAthleteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load athlete %d: %w", id, err)
	}
	return a, nil
}

func (s *service) FindByPIN(ctx context.Context, pin string) (*Athlete, error) {
	if !ValidPIN(pin) {
		return nil, ErrAthleteNotFound
	}

	a, err := s.repo.GetByPIN(ctx, pin)
	if db.IsNotFound(err) {
		return nil, ErrAthleteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load athlete by pin: %w", err)
	}
	return a, nil
}

func (s *service) ListAthletes(ctx context.Context, filter ListFilter) ([]Athlete, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))
	return s.repo.List(ctx, filter)
}

func (s *service) SetStatus(ctx context.Context, id int, status Status) (*Athlete, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	a, err := s.repo.SetStatus(ctx, id, status)
	if db.IsNotFound(err) {
		return nil, ErrAthleteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set athlete %d status: %w", id, err)
	}

	logger.Info("athlete status changed", "athlete_id", id, "status", status)
	return a, nil
}
