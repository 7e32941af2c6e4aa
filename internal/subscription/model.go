package subscription

import "time"

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

type Subscription struct {
	ID           int        `db:"id" json:"id"`
	AthleteID    int        `db:"athlete_id" json:"athlete_id"`
	MembershipID int        `db:"membership_id" json:"membership_id"`
	Status       Status     `db:"status" json:"status"`
	ClassesUsed  int        `db:"classes_used" json:"classes_used"`
	StartDate    time.Time  `db:"start_date" json:"start_date"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Detail is a subscription joined with the plan limits it was sold under.
type Detail struct {
	Subscription
	MembershipName string `db:"membership_name" json:"membership_name"`
	TotalClasses   *int   `db:"total_classes" json:"total_classes,omitempty"`
	WeeklyLimit    *int   `db:"weekly_limit" json:"weekly_limit,omitempty"`
}

// Expired describes one subscription flipped to EXPIRED by the sweep.
type Expired struct {
	SubscriptionID int     `db:"id"`
	AthleteID      int     `db:"athlete_id"`
	FirstName      string  `db:"first_name"`
	Email          *string `db:"email"`
	MembershipName string  `db:"membership_name"`
}

type ExpiryReport struct {
	ExpiredByDate       int       `json:"expired_by_date"`
	ExpiredByCount      int       `json:"expired_by_count"`
	AthletesDeactivated int       `json:"athletes_deactivated"`
	NotificationsQueued int       `json:"notifications_queued"`
	Cutoff              string    `json:"cutoff" example:"2024-03-02"`
	RanAt               time.Time `json:"ran_at"`
}
