package payment

import (
	"time"

	"gymdesk/internal/subscription"
)

type Method string

const (
	MethodCash     Method = "CASH"
	MethodCard     Method = "CARD"
	MethodTransfer Method = "TRANSFER"
)

type Payment struct {
	ID             int       `db:"id" json:"id"`
	AthleteID      int       `db:"athlete_id" json:"athlete_id"`
	MembershipID   int       `db:"membership_id" json:"membership_id"`
	SubscriptionID *int      `db:"subscription_id" json:"subscription_id,omitempty"`
	AmountCents    int64     `db:"amount_cents" json:"amount_cents"`
	Method         Method    `db:"method" json:"method"`
	Note           string    `db:"note" json:"note"`
	PaidAt         time.Time `db:"paid_at" json:"paid_at"`
}

// PaymentRequest sells a membership to an athlete. AmountCents defaults to
// the plan price and StartDate to today in the gym timezone.
type PaymentRequest struct {
	AthleteID    int    `json:"athlete_id" binding:"required,min=1"`
	MembershipID int    `json:"membership_id" binding:"required,min=1"`
	AmountCents  *int64 `json:"amount_cents" binding:"omitempty,gte=0"`
	Method       string `json:"method" binding:"required,oneof=CASH CARD TRANSFER"`
	Note         string `json:"note" binding:"max=500"`
	StartDate    string `json:"start_date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-01"`
}

type Receipt struct {
	Payment      *Payment                   `json:"payment"`
	Subscription *subscription.Subscription `json:"subscription"`
}
