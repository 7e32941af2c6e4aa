package subscription

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const detailColumns = `
	s.id, s.athlete_id, s.membership_id, s.status, s.classes_used, s.start_date, s.end_date,
	s.created_at, s.updated_at, m.name AS membership_name, m.total_classes, m.weekly_limit`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByAthlete(ctx context.Context, athleteID int) ([]Detail, error) {
	query := `SELECT ` + detailColumns + `
		FROM subscriptions s
		JOIN memberships m ON m.id = s.membership_id
		WHERE s.athlete_id = $1
		ORDER BY s.start_date DESC, s.id DESC`

	subs := []Detail{}
	if err := r.db.SelectContext(ctx, &subs, query, athleteID); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) GetActive(ctx context.Context, athleteID int) (*Detail, error) {
	query := `SELECT ` + detailColumns + `
		FROM subscriptions s
		JOIN memberships m ON m.id = s.membership_id
		WHERE s.athlete_id = $1 AND s.status = 'ACTIVE'
		ORDER BY s.start_date DESC, s.id DESC
		LIMIT 1`

	var d Detail
	if err := r.db.GetContext(ctx, &d, query, athleteID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ExpireEndedBefore(ctx context.Context, cutoff time.Time) ([]Expired, error) {
	query := `
		UPDATE subscriptions s
		SET status = 'EXPIRED', updated_at = NOW()
		FROM memberships m, athletes a
		WHERE m.id = s.membership_id
		  AND a.id = s.athlete_id
		  AND s.status = 'ACTIVE'
		  AND s.end_date IS NOT NULL
		  AND s.end_date < $1
		RETURNING s.id, s.athlete_id, a.first_name, a.email, m.name AS membership_name`

	expired := []Expired{}
	if err := r.db.SelectContext(ctx, &expired, query, cutoff.Format(time.DateOnly)); err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *repository) ExpireExhausted(ctx context.Context) ([]Expired, error) {
	query := `
		UPDATE subscriptions s
		SET status = 'EXPIRED', updated_at = NOW()
		FROM memberships m, athletes a
		WHERE m.id = s.membership_id
		  AND a.id = s.athlete_id
		  AND s.status = 'ACTIVE'
		  AND s.end_date IS NULL
		  AND m.total_classes IS NOT NULL
		  AND s.classes_used >= m.total_classes
		RETURNING s.id, s.athlete_id, a.first_name, a.email, m.name AS membership_name`

	expired := []Expired{}
	if err := r.db.SelectContext(ctx, &expired, query); err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *repository) DeactivateAthletesWithoutActive(ctx context.Context, athleteIDs []int) (int, error) {
	if len(athleteIDs) == 0 {
		return 0, nil
	}

	ids := make(pq.Int64Array, len(athleteIDs))
	for i, id := range athleteIDs {
		ids[i] = int64(id)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE athletes
		SET status = 'INACTIVE', updated_at = NOW()
		WHERE id = ANY($1)
		  AND status = 'ACTIVE'
		  AND NOT EXISTS (
			SELECT 1 FROM subscriptions s
			WHERE s.athlete_id = athletes.id AND s.status = 'ACTIVE'
		  )`,
		ids,
	)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}
