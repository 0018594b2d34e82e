package pooling

import "context"

// Repository persists pools.
type Repository interface {
	Save(ctx context.Context, pool *Pool) error
	FindByYear(ctx context.Context, year int) ([]*Pool, error)
	FindAll(ctx context.Context) ([]*Pool, error)
}
