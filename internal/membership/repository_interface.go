package membership

import "context"

type Repository interface {
	Create(ctx context.Context, m *Membership) (*Membership, error)
	GetByID(ctx context.Context, id int) (*Membership, error)
	List(ctx context.Context, includeInactive bool) ([]Membership, error)
}
