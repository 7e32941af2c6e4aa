package settings

import (
	"time"
	_ "time/tzdata"
)

const (
	DefaultEarlyWindowMinutes = 15
	DefaultLateWindowMinutes  = 40
	DefaultExpiryGraceDays    = 3
)

// Settings is the single gym-wide configuration row.
type Settings struct {
	ID                 int       `db:"id" json:"id"`
	Timezone           string    `db:"timezone" json:"timezone"`
	EarlyWindowMinutes int       `db:"early_window_minutes" json:"early_window_minutes"`
	LateWindowMinutes  int       `db:"late_window_minutes" json:"late_window_minutes"`
	ExpiryGraceDays    int       `db:"expiry_grace_days" json:"expiry_grace_days"`
	DeactivateOnExpiry bool      `db:"deactivate_on_expiry" json:"deactivate_on_expiry"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Defaults is what the gym runs on before anyone saves settings.
func Defaults(timezone string) *Settings {
	return &Settings{
		Timezone:           timezone,
		EarlyWindowMinutes: DefaultEarlyWindowMinutes,
		LateWindowMinutes:  DefaultLateWindowMinutes,
		ExpiryGraceDays:    DefaultExpiryGraceDays,
	}
}

// Location resolves the gym timezone. Service.Get and config.Load reject
// unknown zones, so the UTC branch is only reachable for hand-built values.
func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today is the gym-local calendar date of now, at midnight.
func (s *Settings) Today(now time.Time) time.Time {
	local := now.In(s.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

type UpdateRequest struct {
	Timezone           string `json:"timezone" binding:"required"`
	EarlyWindowMinutes *int   `json:"early_window_minutes" binding:"required,gte=0,lte=720"`
	LateWindowMinutes  *int   `json:"late_window_minutes" binding:"required,gte=0,lte=720"`
	ExpiryGraceDays    *int   `json:"expiry_grace_days" binding:"required,gte=0,lte=365"`
	DeactivateOnExpiry bool   `json:"deactivate_on_expiry"`
}
