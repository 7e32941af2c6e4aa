package athlete

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const columns = `id, first_name, last_name, email, phone, pin, status, tags, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Athlete) (*Athlete, error) {
	query := `
		INSERT INTO athletes (first_name, last_name, email, phone, pin, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	var out Athlete
	err := r.db.GetContext(ctx, &out, query, a.FirstName, a.LastName, a.Email, a.Phone, a.PIN, a.Tags)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Update(ctx context.Context, a *Athlete) (*Athlete, error) {
	query := `
		UPDATE athletes
		SET first_name = $1, last_name = $2, email = $3, phone = $4, pin = $5, tags = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + columns

	var out Athlete
	err := r.db.GetContext(ctx, &out, query, a.FirstName, a.LastName, a.Email, a.Phone, a.PIN, a.Tags, a.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Athlete, error) {
	var a Athlete
	if err := r.db.GetContext(ctx, &a, `SELECT `+columns+` FROM athletes WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByPIN(ctx context.Context, pin string) (*Athlete, error) {
	var a Athlete
	if err := r.db.GetContext(ctx, &a, `SELECT `+columns+` FROM athletes WHERE pin = $1`, pin); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Athlete, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + columns + ` FROM athletes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY first_name ASC, last_name ASC, id ASC"

	athletes := []Athlete{}
	if err := r.db.SelectContext(ctx, &athletes, query, args...); err != nil {
		return nil, err
	}
	return athletes, nil
}

func (r *repository) SetStatus(ctx context.Context, id int, status Status) (*Athlete, error) {
	query := `
		UPDATE athletes SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + columns

	var out Athlete
	if err := r.db.GetContext(ctx, &out, query, status, id); err != nil {
		return nil, err
	}
	return &out, nil
}
