package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/class"
	"gymdesk/internal/settings"
)

// CheckWindow decides whether now falls inside the check-in window of c.
// The class start is read as wall-clock time in the gym timezone on the
// local calendar date of now. Both window edges are inclusive.
func CheckWindow(c *class.Class, cfg *settings.Settings, now time.Time) *Error {
	local := now.In(cfg.Location())

	today := class.WeekdayOf(local)
	if today != c.DayOfWeek {
		return errWrongDay(c.DayOfWeek, today)
	}

	diff := local.Sub(c.StartTime.On(local)).Minutes()
	if diff < -float64(cfg.EarlyWindowMinutes) {
		return errTooEarly(cfg.EarlyWindowMinutes)
	}
	if diff > float64(cfg.LateWindowMinutes) {
		return errTooLate()
	}
	return nil
}

type ClassLookup interface {
	GetClass(ctx context.Context, id int) (*class.Class, error)
}

type SettingsProvider interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// Validator loads the class and gym settings and applies CheckWindow.
type Validator struct {
	classes  ClassLookup
	settings SettingsProvider
}

func NewValidator(classes ClassLookup, sp SettingsProvider) *Validator {
	return &Validator{classes: classes, settings: sp}
}

// Validate returns a *Error for refusals and a plain error when storage
// could not be read.
func (v *Validator) Validate(ctx context.Context, classID int, now time.Time) (*class.Class, error) {
	c, err := v.activeClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	cfg, err := v.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if werr := CheckWindow(c, cfg, now); werr != nil {
		return nil, werr
	}
	return c, nil
}

func (v *Validator) activeClass(ctx context.Context, classID int) (*class.Class, error) {
	c, err := v.classes.GetClass(ctx, classID)
	if errors.Is(err, class.ErrClassNotFound) {
		return nil, errClassNotFound()
	}
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, errClassNotFound()
	}
	return c, nil
}
