package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/cache"
	"gymdesk/internal/logger"
	"gymdesk/internal/settings"
	"gymdesk/internal/subscription"
)

const (
	rosterTTL            = 5 * time.Minute
	defaultAnalyticsDays = 30
)

var ErrInvalidRange = errors.New("invalid date range")

type SettingsProvider interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// ActiveSubscriptions finds the plan an athlete is currently on.
type ActiveSubscriptions interface {
	GetActive(ctx context.Context, athleteID int) (*subscription.Detail, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type Service interface {
	// Record stores one check-in for the gym-local date of now. created is
	// false when the athlete was already checked into the class that day.
	Record(ctx context.Context, athleteID, classID int, method Method, now time.Time) (created bool, err error)
	WeeklyUsageFor(ctx context.Context, athleteID int, ref time.Time) (int, error)
	UsageFor(ctx context.Context, athleteID int) (*Usage, error)
	Roster(ctx context.Context, classID int, date time.Time) (*Roster, error)
	Analytics(ctx context.Context, from, to time.Time) (*Analytics, error)
}

type service struct {
	repo     Repository
	settings SettingsProvider
	subs     ActiveSubscriptions
	cache    Cache
	now      func() time.Time
}

// NewService wires the attendance service. c may be nil.
func NewService(repo Repository, sp SettingsProvider, subs ActiveSubscriptions, c Cache) Service {
	return &service{repo: repo, settings: sp, subs: subs, cache: c, now: time.Now}
}

func (s *service) location(ctx context.Context) (*time.Location, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Location(), nil
}

func (s *service) Record(ctx context.Context, athleteID, classID int, method Method, now time.Time) (bool, error) {
	loc, err := s.location(ctx)
	if err != nil {
		return false, err
	}

	local := now.In(loc)
	a := &Attendance{
		AthleteID:   athleteID,
		ClassID:     classID,
		Date:        time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
		CheckInTime: now,
		Method:      method,
	}

	created, err := s.repo.Record(ctx, a)
	if err != nil {
		return false, err
	}

	if created && s.cache != nil {
		key := cache.RosterKey(classID, a.Date.Format(time.DateOnly))
		if err := s.cache.Invalidate(ctx, key); err != nil {
			logger.Warn("roster cache invalidation failed", "key", key, "error", err)
		}
	}

	return created, nil
}

func (s *service) WeeklyUsageFor(ctx context.Context, athleteID int, ref time.Time) (int, error) {
	loc, err := s.location(ctx)
	if err != nil {
		return 0, err
	}

	from, to := WeekBounds(ref, loc)
	return s.repo.CountBetween(ctx, athleteID, from, to)
}

func (s *service) UsageFor(ctx context.Context, athleteID int) (*Usage, error) {
	used, err := s.WeeklyUsageFor(ctx, athleteID, s.now())
	if err != nil {
		return nil, fmt.Errorf("weekly usage: %w", err)
	}

	usage := &Usage{WeeklyUsed: used}

	sub, err := s.subs.GetActive(ctx, athleteID)
	if errors.Is(err, subscription.ErrNoActiveSubscription) {
		return usage, nil
	}
	if err != nil {
		return nil, err
	}

	usage.WeeklyLimit = sub.WeeklyLimit
	usage.LimitReached = limitReached(used, sub.WeeklyLimit)
	usage.TotalUsed = sub.ClassesUsed
	usage.TotalAllowance = sub.TotalClasses
	return usage, nil
}

// Roster lists who checked into classID on date. Only the calendar date is
// used; a zero date means today in the gym timezone.
func (s *service) Roster(ctx context.Context, classID int, date time.Time) (*Roster, error) {
	loc, err := s.location(ctx)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = s.now().In(loc)
	}
	date = CalendarDay(date, loc)

	key := cache.RosterKey(classID, date.Format(time.DateOnly))

	if s.cache != nil {
		var cached Roster
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warn("roster cache read failed", "key", key, "error", err)
		} else if ok {
			return &cached, nil
		}
	}

	entries, err := s.repo.ListByClassDate(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.AthleteID)
	}

	from, to := WeekBounds(date, loc)
	counts, err := s.repo.CountByAthletesBetween(ctx, ids, from, to)
	if err != nil {
		return nil, fmt.Errorf("load weekly usage: %w", err)
	}

	for i := range entries {
		entries[i].WeeklyUsed = counts[entries[i].AthleteID]
		entries[i].LimitReached = limitReached(entries[i].WeeklyUsed, entries[i].WeeklyLimit)
	}

	roster := &Roster{
		ClassID: classID,
		Date:    date.Format(time.DateOnly),
		Count:   len(entries),
		Entries: entries,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, roster, rosterTTL); err != nil {
			logger.Warn("roster cache write failed", "key", key, "error", err)
		}
	}

	return roster, nil
}

// Analytics counts check-ins over [from, to). A zero to means tomorrow in the
// gym timezone and a zero from means defaultAnalyticsDays before to.
func (s *service) Analytics(ctx context.Context, from, to time.Time) (*Analytics, error) {
	loc, err := s.location(ctx)
	if err != nil {
		return nil, err
	}

	if to.IsZero() {
		to = CalendarDay(s.now().In(loc), loc).AddDate(0, 0, 1)
	} else {
		to = CalendarDay(to, loc)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -defaultAnalyticsDays)
	} else {
		from = CalendarDay(from, loc)
	}

	if !to.After(from) {
		return nil, ErrInvalidRange
	}

	byDay, err := s.repo.StatsByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats by day: %w", err)
	}

	byClass, err := s.repo.StatsByClass(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats by class: %w", err)
	}

	total := 0
	for _, d := range byDay {
		total += d.Count
	}

	return &Analytics{
		From:    from.Format(time.DateOnly),
		To:      to.Format(time.DateOnly),
		Total:   total,
		ByDay:   byDay,
		ByClass: byClass,
	}, nil
}
