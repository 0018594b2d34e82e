package memory

import (
	"context"
	"sync"

	routes "fueleu-maritime/internal/routes/domain"
)

// RouteRepository is an in-memory route store preserving insertion order.
type RouteRepository struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*routes.Route
}

// NewRouteRepository constructs a repository.
func NewRouteRepository() *RouteRepository {
	return &RouteRepository{data: make(map[string]*routes.Route)}
}

// Find lists routes matching the filter in insertion order.
func (r *RouteRepository) Find(ctx context.Context, filter routes.Filter) ([]*routes.Route, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*routes.Route
	for _, id := range r.order {
		route := r.data[id]
		if filter.Matches(route) {
			copy := *route
			out = append(out, &copy)
		}
	}
	return out, nil
}

// FindPage returns one page of matching routes and the unpaged total.
func (r *RouteRepository) FindPage(ctx context.Context, filter routes.Filter, page, limit int) ([]*routes.Route, int, error) {
	all, err := r.Find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if page < 1 || limit < 1 {
		return all, total, nil
	}
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// FindByID loads one route, nil when unknown.
func (r *RouteRepository) FindByID(ctx context.Context, routeID string) (*routes.Route, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	route := r.data[routeID]
	if route == nil {
		return nil, nil
	}
	copy := *route
	return &copy, nil
}

// FindBaseline loads the baseline route, nil when none is flagged.
func (r *RouteRepository) FindBaseline(ctx context.Context) (*routes.Route, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if r.data[id].IsBaseline {
			copy := *r.data[id]
			return &copy, nil
		}
	}
	return nil, nil
}

// SetBaseline clears every baseline flag and sets the named route's.
func (r *RouteRepository) SetBaseline(ctx context.Context, routeID string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	route := r.data[routeID]
	if route == nil {
		return routes.ErrRouteNotFound
	}
	for _, existing := range r.data {
		existing.IsBaseline = false
	}
	route.IsBaseline = true
	return nil
}

// Save stores a route, overwriting an existing id.
func (r *RouteRepository) Save(ctx context.Context, route *routes.Route) error {
	_ = ctx
	if route == nil {
		return routes.ErrNilRoute
	}
	copy := *route
	r.mu.Lock()
	if _, seen := r.data[route.RouteID]; !seen {
		r.order = append(r.order, route.RouteID)
	}
	r.data[route.RouteID] = &copy
	r.mu.Unlock()
	return nil
}
