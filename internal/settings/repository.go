package settings

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const columns = `id, timezone, early_window_minutes, late_window_minutes, expiry_grace_days, deactivate_on_expiry, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	query := `SELECT ` + columns + ` FROM gym_settings ORDER BY id ASC LIMIT 1`

	var s Settings
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Settings) (*Settings, error) {
	query := `
		INSERT INTO gym_settings (timezone, early_window_minutes, late_window_minutes, expiry_grace_days, deactivate_on_expiry)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	var out Settings
	err := r.db.GetContext(ctx, &out, query,
		s.Timezone, s.EarlyWindowMinutes, s.LateWindowMinutes, s.ExpiryGraceDays, s.DeactivateOnExpiry)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Update(ctx context.Context, s *Settings) (*Settings, error) {
	query := `
		UPDATE gym_settings
		SET timezone = $1, early_window_minutes = $2, late_window_minutes = $3,
		    expiry_grace_days = $4, deactivate_on_expiry = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + columns

	var out Settings
	err := r.db.GetContext(ctx, &out, query,
		s.Timezone, s.EarlyWindowMinutes, s.LateWindowMinutes, s.ExpiryGraceDays, s.DeactivateOnExpiry, s.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
