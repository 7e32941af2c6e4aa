package payment

import (
	"context"
	"time"

	"gymdesk/internal/db"
	"gymdesk/internal/subscription"

	"github.com/jmoiron/sqlx"
)

const defaultPageSize = 50

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func dateOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

func (r *repository) CreateWithSubscription(ctx context.Context, p *Payment, sub *subscription.Subscription) (*Receipt, error) {
	receipt := &Receipt{Payment: &Payment{}, Subscription: &subscription.Subscription{}}

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, receipt.Subscription, `
			INSERT INTO subscriptions (athlete_id, membership_id, status, start_date, end_date)
			VALUES ($1, $2, 'ACTIVE', $3, $4)
			RETURNING id, athlete_id, membership_id, status, classes_used, start_date, end_date, created_at, updated_at`,
			sub.AthleteID, sub.MembershipID, sub.StartDate.Format(time.DateOnly), dateOrNil(sub.EndDate),
		)
		if err != nil {
			return err
		}

		return tx.GetContext(ctx, receipt.Payment, `
			INSERT INTO payments (athlete_id, membership_id, subscription_id, amount_cents, method, note)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, athlete_id, membership_id, subscription_id, amount_cents, method, note, paid_at`,
			p.AthleteID, p.MembershipID, receipt.Subscription.ID, p.AmountCents, p.Method, p.Note,
		)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (r *repository) ListByAthlete(ctx context.Context, athleteID, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT id, athlete_id, membership_id, subscription_id, amount_cents, method, note, paid_at
		FROM payments
		WHERE athlete_id = $1
		ORDER BY paid_at DESC
		LIMIT $2 OFFSET $3
	`, athleteID, limit, offset)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
