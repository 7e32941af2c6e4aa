package athlete

import "context"

type Repository interface {
	Create(ctx context.Context, a *Athlete) (*Athlete, error)
	Update(ctx context.Context, a *Athlete) (*Athlete, error)
	GetByID(ctx context.Context, id int) (*Athlete, error)
	GetByPIN(ctx context.Context, pin string) (*Athlete, error)
	List(ctx context.Context, filter ListFilter) ([]Athlete, error)
	SetStatus(ctx context.Context, id int, status Status) (*Athlete, error)
}
