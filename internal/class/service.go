package class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/db"
	"gymdesk/internal/settings"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrInvalidSchedule = errors.New("invalid class schedule")
)

// SettingsProvider resolves the gym timezone for "today" lookups.
type SettingsProvider interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Service interface {
	CreateClass(ctx context.Context, req ClassRequest) (*Class, error)
	UpdateClass(ctx context.Context, id int, req ClassRequest) (*Class, error)
	DeactivateClass(ctx context.Context, id int) error
	GetClass(ctx context.Context, id int) (*Class, error)
	ListClasses(ctx context.Context, day Weekday) ([]Class, error)
	TodayClasses(ctx context.Context) ([]Class, error)
}

type service struct {
	repo     Repository
	settings SettingsProvider
	now      func() time.Time
}

func NewService(repo Repository, sp SettingsProvider) Service {
	return &service{repo: repo, settings: sp, now: time.Now}
}

func fromRequest(req ClassRequest) (*Class, error) {
	day := Weekday(req.DayOfWeek)
	if !day.Valid() {
		return nil, ErrInvalidSchedule
	}

	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	if end.Minutes() <= start.Minutes() {
		return nil, ErrInvalidSchedule
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidSchedule
	}

	return &Class{
		Name:      req.Name,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Capacity:  req.Capacity,
		Active:    true,
	}, nil
}

func (s *service) CreateClass(ctx context.Context, req ClassRequest) (*Class, error) {
	c, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *service) UpdateClass(ctx context.Context, id int, req ClassRequest) (*Class, error) {
	c, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	c.ID = id

	updated, err := s.repo.Update(ctx, c)
	if db.IsNotFound(err) {
		return nil, ErrClassNotFound
	}
	return updated, err
}

func (s *service) DeactivateClass(ctx context.Context, id int) error {
	err := s.repo.Deactivate(ctx, id)
	if db.IsNotFound(err) {
		return ErrClassNotFound
	}
	return err
}

func (s *service) GetClass(ctx context.Context, id int) (*Class, error) {
	c, err := s.repo.GetByID(ctx, id)
	if db.IsNotFound(err) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load class %d: %w", id, err)
	}
	return c, nil
}

func (s *service) ListClasses(ctx context.Context, day Weekday) ([]Class, error) {
	if day != "" && !day.Valid() {
		return nil, ErrInvalidSchedule
	}
	return s.repo.List(ctx, day)
}

// TodayClasses lists the classes scheduled on the current gym-local weekday.
func (s *service) TodayClasses(ctx context.Context) ([]Class, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, WeekdayOf(s.now().In(cfg.Location())))
}
