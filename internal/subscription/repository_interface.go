package subscription

import (
	"context"
	"time"
)

type Repository interface {
	ListByAthlete(ctx context.Context, athleteID int) ([]Detail, error)
	// GetActive returns the newest ACTIVE subscription or sql.ErrNoRows.
	GetActive(ctx context.Context, athleteID int) (*Detail, error)
	ExpireEndedBefore(ctx context.Context, cutoff time.Time) ([]Expired, error)
	ExpireExhausted(ctx context.Context) ([]Expired, error)
	DeactivateAthletesWithoutActive(ctx context.Context, athleteIDs []int) (int, error)
}
