package checkin

import (
	"time"

	"gymdesk/internal/attendance"
)

type CheckInRequest struct {
	PIN   string `json:"pin" binding:"required" example:"1234"`
	Token string `json:"token" binding:"required"`
}

type ManualCheckInRequest struct {
	AthleteID int `json:"athlete_id" binding:"required,min=1"`
}

// Result is the kiosk-facing outcome of a check-in attempt.
type Result struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	AthleteName      string            `json:"athlete_name,omitempty"`
	AlreadyCheckedIn bool              `json:"already_checked_in"`
	Kind             Kind              `json:"kind,omitempty"`
	Usage            *attendance.Usage `json:"usage,omitempty"`
}

type QRToken struct {
	Token               string    `json:"token"`
	ClassID             int       `json:"class_id"`
	ClassName           string    `json:"class_name"`
	ExpiresAt           time.Time `json:"expires_at"`
	RefreshAfterSeconds int       `json:"refresh_after_seconds" example:"25"`
}

func refused(e *Error) *Result {
	return &Result{Success: false, Message: e.Message, Kind: e.Kind}
}
