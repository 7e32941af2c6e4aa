package class

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

const columns = `id, name, day_of_week, start_time, end_time, capacity, active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Class) (*Class, error) {
	query := `
		INSERT INTO classes (name, day_of_week, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	var out Class
	err := r.db.GetContext(ctx, &out, query, c.Name, c.DayOfWeek, c.StartTime, c.EndTime, c.Capacity)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Update(ctx context.Context, c *Class) (*Class, error) {
	query := `
		UPDATE classes
		SET name = $1, day_of_week = $2, start_time = $3, end_time = $4, capacity = $5
		WHERE id = $6
		RETURNING ` + columns

	var out Class
	err := r.db.GetContext(ctx, &out, query, c.Name, c.DayOfWeek, c.StartTime, c.EndTime, c.Capacity, c.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE classes SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Class, error) {
	query := `SELECT ` + columns + ` FROM classes WHERE id = $1`

	var c Class
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, day Weekday) ([]Class, error) {
	query := `SELECT ` + columns + ` FROM classes WHERE active = TRUE`
	args := []interface{}{}

	if day != "" {
		query += " AND day_of_week = $1"
		args = append(args, day)
	}

	query += " ORDER BY start_time ASC, id ASC"

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, err
	}
	return classes, nil
}
