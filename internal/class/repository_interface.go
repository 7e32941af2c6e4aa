package class

import "context"

type Repository interface {
	Create(ctx context.Context, c *Class) (*Class, error)
	Update(ctx context.Context, c *Class) (*Class, error)
	Deactivate(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Class, error)
	// List returns active classes, optionally only those on day.
	List(ctx context.Context, day Weekday) ([]Class, error)
}
