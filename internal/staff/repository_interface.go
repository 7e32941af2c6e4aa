package staff

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*Staff, error)
	FindByEmail(ctx context.Context, email string) (*Staff, error)
	FindByID(ctx context.Context, id int) (*Staff, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
