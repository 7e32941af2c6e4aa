package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymdesk/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Dates are sent as plain YYYY-MM-DD strings so the DATE column never goes
// through a session timezone conversion.
func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

func (r *repository) Record(ctx context.Context, a *Attendance) (bool, error) {
	created := false

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id int
		err := tx.GetContext(ctx, &id, `
			INSERT INTO attendances (athlete_id, class_id, date, check_in_time, method)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT ON CONSTRAINT attendances_athlete_class_date_key DO NOTHING
			RETURNING id`,
			a.AthleteID, a.ClassID, day(a.Date), a.CheckInTime, a.Method,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE subscriptions
			SET classes_used = classes_used + 1, updated_at = NOW()
			WHERE id = (
				SELECT id FROM subscriptions
				WHERE athlete_id = $1 AND status = 'ACTIVE'
				ORDER BY start_date DESC, id DESC
				LIMIT 1
			)`,
			a.AthleteID,
		)
		if err != nil {
			return err
		}

		a.ID = id
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

func (r *repository) CountBetween(ctx context.Context, athleteID int, from, to time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM attendances
		WHERE athlete_id = $1 AND date >= $2 AND date < $3`,
		athleteID, day(from), day(to),
	)
	return n, err
}

func (r *repository) CountByAthletesBetween(ctx context.Context, athleteIDs []int, from, to time.Time) (map[int]int, error) {
	counts := make(map[int]int, len(athleteIDs))
	if len(athleteIDs) == 0 {
		return counts, nil
	}

	ids := make(pq.Int64Array, len(athleteIDs))
	for i, id := range athleteIDs {
		ids[i] = int64(id)
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT athlete_id, COUNT(*) AS used
		FROM attendances
		WHERE athlete_id = ANY($1) AND date >= $2 AND date < $3
		GROUP BY athlete_id`,
		ids, day(from), day(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var athleteID, used int
		if err := rows.Scan(&athleteID, &used); err != nil {
			return nil, err
		}
		counts[athleteID] = used
	}

	return counts, rows.Err()
}

func (r *repository) ListByClassDate(ctx context.Context, classID int, date time.Time) ([]RosterEntry, error) {
	query := `
		SELECT a.id, a.athlete_id, ath.first_name, ath.last_name, a.check_in_time, a.method, plan.weekly_limit
		FROM attendances a
		JOIN athletes ath ON ath.id = a.athlete_id
		LEFT JOIN LATERAL (
			SELECT m.weekly_limit
			FROM subscriptions s
			JOIN memberships m ON m.id = s.membership_id
			WHERE s.athlete_id = a.athlete_id AND s.status = 'ACTIVE'
			ORDER BY s.start_date DESC, s.id DESC
			LIMIT 1
		) plan ON TRUE
		WHERE a.class_id = $1 AND a.date = $2
		ORDER BY a.check_in_time ASC`

	entries := []RosterEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, classID, day(date)); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) StatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	stats := []DayStat{}
	err := r.db.SelectContext(ctx, &stats, `
		SELECT date AS day, COUNT(*) AS count
		FROM attendances
		WHERE date >= $1 AND date < $2
		GROUP BY date
		ORDER BY date ASC`,
		day(from), day(to),
	)
	return stats, err
}

func (r *repository) StatsByClass(ctx context.Context, from, to time.Time) ([]ClassStat, error) {
	stats := []ClassStat{}
	err := r.db.SelectContext(ctx, &stats, `
		SELECT c.id AS class_id, c.name AS class_name, COUNT(a.id) AS count
		FROM attendances a
		JOIN classes c ON c.id = a.class_id
		WHERE a.date >= $1 AND a.date < $2
		GROUP BY c.id, c.name
		ORDER BY count DESC, c.name ASC`,
		day(from), day(to),
	)
	return stats, err
}
