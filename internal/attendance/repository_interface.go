package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Record inserts the attendance unless one already exists for the same
	// athlete, class and date. A new row also bumps the athlete's active
	// subscription usage in the same transaction.
	Record(ctx context.Context, a *Attendance) (created bool, err error)
	CountBetween(ctx context.Context, athleteID int, from, to time.Time) (int, error)
	CountByAthletesBetween(ctx context.Context, athleteIDs []int, from, to time.Time) (map[int]int, error)
	ListByClassDate(ctx context.Context, classID int, date time.Time) ([]RosterEntry, error)
	StatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	StatsByClass(ctx context.Context, from, to time.Time) ([]ClassStat, error)
}
