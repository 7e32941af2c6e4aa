package settings

import "context"

type Repository interface {
	// Get returns the first settings row or sql.ErrNoRows.
	Get(ctx context.Context) (*Settings, error)
	Create(ctx context.Context, s *Settings) (*Settings, error)
	Update(ctx context.Context, s *Settings) (*Settings, error)
}
