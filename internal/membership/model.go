package membership

import "time"

// Membership is a plan athletes pay for. A plan is bounded by time
// (DurationDays), by a class allowance (TotalClasses), or both.
type Membership struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	DurationDays *int      `db:"duration_days" json:"duration_days,omitempty"`
	TotalClasses *int      `db:"total_classes" json:"total_classes,omitempty"`
	WeeklyLimit  *int      `db:"weekly_limit" json:"weekly_limit,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type MembershipRequest struct {
	Name         string `json:"name" binding:"required,max=100" example:"Bono 10 clases"`
	PriceCents   int64  `json:"price_cents" binding:"gte=0" example:"6000"`
	DurationDays *int   `json:"duration_days" binding:"omitempty,min=1" example:"30"`
	TotalClasses *int   `json:"total_classes" binding:"omitempty,min=1" example:"10"`
	WeeklyLimit  *int   `json:"weekly_limit" binding:"omitempty,min=1" example:"3"`
}
