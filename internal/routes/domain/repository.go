package routes

import "context"

// Repository persists routes.
type Repository interface {
	Find(ctx context.Context, filter Filter) ([]*Route, error)
	// FindPage returns one page of matching routes plus the unpaged total.
	FindPage(ctx context.Context, filter Filter, page, limit int) ([]*Route, int, error)
	// FindByID returns nil, nil when the route id is unknown.
	FindByID(ctx context.Context, routeID string) (*Route, error)
	// FindBaseline returns nil, nil when no baseline is set.
	FindBaseline(ctx context.Context) (*Route, error)
	// SetBaseline clears the baseline flag on every route and sets it on the
	// named one as a single atomic step.
	SetBaseline(ctx context.Context, routeID string) error
	Save(ctx context.Context, route *Route) error
}
