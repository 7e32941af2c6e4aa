package competition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymdesk/internal/athlete"
	"gymdesk/internal/db"
	"gymdesk/internal/logger"
)

const activeEntryConstraint = "competition_entries_active_key"

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrAlreadyRegistered   = errors.New("athlete already registered for this competition")
	ErrAlreadyWithdrawn    = errors.New("entry already withdrawn")
	ErrInvalidDate         = errors.New("invalid event date")
)

type AthleteLookup interface {
	GetAthlete(ctx context.Context, id int) (*athlete.Athlete, error)
}

type Service interface {
	CreateCompetition(ctx context.Context, req CompetitionRequest) (*Competition, error)
	ListCompetitions(ctx context.Context, upcoming bool) ([]Competition, error)
	Register(ctx context.Context, competitionID int, req EntryRequest) (*Entry, error)
	Withdraw(ctx context.Context, entryID int) (*Entry, error)
	ListEntries(ctx context.Context, competitionID int) ([]EntryWithAthlete, error)
}

type service struct {
	repo     Repository
	athletes AthleteLookup
	now      func() time.Time
}

func NewService(repo Repository, athletes AthleteLookup) Service {
	return &service{repo: repo, athletes: athletes, now: time.Now}
}

func (s *service) CreateCompetition(ctx context.Context, req CompetitionRequest) (*Competition, error) {
	date, err := time.Parse(time.DateOnly, req.EventDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	c, err := s.repo.Create(ctx, &Competition{
		Name:      strings.TrimSpace(req.Name),
		Location:  strings.TrimSpace(req.Location),
		EventDate: date,
	})
	if err != nil {
		return nil, fmt.Errorf("create competition: %w", err)
	}

	logger.Info("competition created", "competition_id", c.ID, "event_date", req.EventDate)
	return c, nil
}

func (s *service) ListCompetitions(ctx context.Context, upcoming bool) ([]Competition, error) {
	var from time.Time
	if upcoming {
		now := s.now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return s.repo.List(ctx, from)
}

func (s *service) competition(ctx context.Context, id int) (*Competition, error) {
	c, err := s.repo.GetByID(ctx, id)
	if db.IsNotFound(err) {
		return nil, ErrCompetitionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load competition %d: %w", id, err)
	}
	return c, nil
}

func (s *service) Register(ctx context.Context, competitionID int, req EntryRequest) (*Entry, error) {
	if _, err := s.competition(ctx, competitionID); err != nil {
		return nil, err
	}
	if _, err := s.athletes.GetAthlete(ctx, req.AthleteID); err != nil {
		return nil, err
	}

	e, err := s.repo.CreateEntry(ctx, &Entry{
		CompetitionID: competitionID,
		AthleteID:     req.AthleteID,
		Category:      strings.TrimSpace(req.Category),
	})
	if db.IsUniqueViolation(err, activeEntryConstraint) {
		return nil, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("register entry: %w", err)
	}

	logger.Info("competition entry registered", "competition_id", competitionID, "athlete_id", req.AthleteID, "entry_id", e.ID)
	return e, nil
}

func (s *service) Withdraw(ctx context.Context, entryID int) (*Entry, error) {
	e, err := s.repo.Withdraw(ctx, entryID)
	if err == nil {
		return e, nil
	}
	if !db.IsNotFound(err) {
		return nil, fmt.Errorf("withdraw entry %d: %w", entryID, err)
	}

	// Tell "missing" apart from "already withdrawn".
	_, err = s.repo.GetEntry(ctx, entryID)
	if db.IsNotFound(err) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load entry %d: %w", entryID, err)
	}
	return nil, ErrAlreadyWithdrawn
}

func (s *service) ListEntries(ctx context.Context, competitionID int) ([]EntryWithAthlete, error) {
	if _, err := s.competition(ctx, competitionID); err != nil {
		return nil, err
	}
	return s.repo.ListEntries(ctx, competitionID)
}
