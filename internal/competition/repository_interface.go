package competition

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Competition) (*Competition, error)
	GetByID(ctx context.Context, id int) (*Competition, error)
	// List returns competitions on or after from; a zero from lists all.
	List(ctx context.Context, from time.Time) ([]Competition, error)

	CreateEntry(ctx context.Context, e *Entry) (*Entry, error)
	GetEntry(ctx context.Context, id int) (*Entry, error)
	Withdraw(ctx context.Context, id int) (*Entry, error)
	ListEntries(ctx context.Context, competitionID int) ([]EntryWithAthlete, error)
}
