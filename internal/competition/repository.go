package competition

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const (
	competitionColumns = `id, name, location, event_date, created_at`
	entryColumns       = `id, competition_id, athlete_id, category, status, created_at`
)

func (r *repository) Create(ctx context.Context, c *Competition) (*Competition, error) {
	created := &Competition{}
	err := r.db.GetContext(ctx, created, `
		INSERT INTO competitions (name, location, event_date)
		VALUES ($1, $2, $3)
		RETURNING `+competitionColumns,
		c.Name, c.Location, c.EventDate.Format(time.DateOnly),
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Competition, error) {
	c := &Competition{}
	if err := r.db.GetContext(ctx, c, `SELECT `+competitionColumns+` FROM competitions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, from time.Time) ([]Competition, error) {
	comps := []Competition{}
	var err error
	if from.IsZero() {
		err = r.db.SelectContext(ctx, &comps, `SELECT `+competitionColumns+` FROM competitions ORDER BY event_date DESC`)
	} else {
		err = r.db.SelectContext(ctx, &comps, `
			SELECT `+competitionColumns+` FROM competitions
			WHERE event_date >= $1
			ORDER BY event_date`,
			from.Format(time.DateOnly),
		)
	}
	if err != nil {
		return nil, err
	}
	return comps, nil
}

func (r *repository) CreateEntry(ctx context.Context, e *Entry) (*Entry, error) {
	created := &Entry{}
	err := r.db.GetContext(ctx, created, `
		INSERT INTO competition_entries (competition_id, athlete_id, category)
		VALUES ($1, $2, $3)
		RETURNING `+entryColumns,
		e.CompetitionID, e.AthleteID, e.Category,
	)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) GetEntry(ctx context.Context, id int) (*Entry, error) {
	e := &Entry{}
	if err := r.db.GetContext(ctx, e, `SELECT `+entryColumns+` FROM competition_entries WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return e, nil
}

// Withdraw only touches registered entries; sql.ErrNoRows means the entry
// is missing or already withdrawn.
func (r *repository) Withdraw(ctx context.Context, id int) (*Entry, error) {
	e := &Entry{}
	err := r.db.GetContext(ctx, e, `
		UPDATE competition_entries
		SET status = 'withdrawn'
		WHERE id = $1 AND status = 'registered'
		RETURNING `+entryColumns,
		id,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repository) ListEntries(ctx context.Context, competitionID int) ([]EntryWithAthlete, error) {
	entries := []EntryWithAthlete{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT e.id, e.competition_id, e.athlete_id, e.category, e.status, e.created_at,
		       a.first_name, a.last_name
		FROM competition_entries e
		JOIN athletes a ON a.id = e.athlete_id
		WHERE e.competition_id = $1
		ORDER BY e.status, a.last_name, a.first_name`,
		competitionID,
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
