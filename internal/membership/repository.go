package membership

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const membershipColumns = `id, name, price_cents, duration_days, total_classes, weekly_limit, active, created_at`

func (r *repository) Create(ctx context.Context, m *Membership) (*Membership, error) {
	created := &Membership{}
	err := r.db.GetContext(ctx, created, `
		INSERT INTO memberships (name, price_cents, duration_days, total_classes, weekly_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+membershipColumns,
		m.Name, m.PriceCents, m.DurationDays, m.TotalClasses, m.WeeklyLimit,
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membership, error) {
	m := &Membership{}
	err := r.db.GetContext(ctx, m, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships`
	if !includeInactive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY price_cents, id`

	plans := []Membership{}
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, err
	}
	return plans, nil
}
