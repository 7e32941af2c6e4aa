package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/cache"
	"gymdesk/internal/db"
	"gymdesk/internal/logger"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

const cacheTTL = 10 * time.Minute

// Cache is the slice of cache.Store the resolver needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type Service interface {
	// Get never fails for a missing row; it falls back to Defaults.
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)
}

type service struct {
	repo      Repository
	cache     Cache
	defaultTZ string
}

// NewService builds the resolver. cache may be nil.
func NewService(repo Repository, c Cache, defaultTZ string) Service {
	return &service{repo: repo, cache: c, defaultTZ: defaultTZ}
}

func (s *service) Get(ctx context.Context) (*Settings, error) {
	if s.cache != nil {
		var cached Settings
		ok, err := s.cache.GetJSON(ctx, cache.SettingsKey, &cached)
		if err != nil {
			logger.Warn("settings cache read failed", "error", err)
		} else if ok {
			return &cached, nil
		}
	}

	current, err := s.repo.Get(ctx)
	if db.IsNotFound(err) {
		return Defaults(s.defaultTZ), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if _, err := time.LoadLocation(current.Timezone); err != nil || current.Timezone == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, current.Timezone)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.SettingsKey, current, cacheTTL); err != nil {
			logger.Warn("settings cache write failed", "error", err)
		}
	}
	return current, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, ErrInvalidTimezone
	}

	next := &Settings{
		Timezone:           req.Timezone,
		EarlyWindowMinutes: *req.EarlyWindowMinutes,
		LateWindowMinutes:  *req.LateWindowMinutes,
		ExpiryGraceDays:    *req.ExpiryGraceDays,
		DeactivateOnExpiry: req.DeactivateOnExpiry,
	}

	current, err := s.repo.Get(ctx)
	var saved *Settings
	switch {
	case db.IsNotFound(err):
		saved, err = s.repo.Create(ctx, next)
	case err != nil:
		return nil, fmt.Errorf("load settings: %w", err)
	default:
		next.ID = current.ID
		saved, err = s.repo.Update(ctx, next)
	}
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cache.SettingsKey); err != nil {
			logger.Warn("settings cache invalidation failed", "error", err)
		}
	}

	logger.Info("gym settings updated",
		"timezone", saved.Timezone,
		"early_window_minutes", saved.EarlyWindowMinutes,
		"late_window_minutes", saved.LateWindowMinutes)
	return saved, nil
}
