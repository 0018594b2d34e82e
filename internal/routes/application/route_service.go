package application

import (
	"context"
	"errors"
	"fmt"

	routes "fueleu-maritime/internal/routes/domain"
)

// RouteListing is a paginated route response.
type RouteListing struct {
	Data       []*routes.Route `json:"data"`
	Pagination routes.Page     `json:"pagination"`
}

// RouteService lists routes and manages the baseline flag.
type RouteService struct {
	repo routes.Repository
}

// NewRouteService constructs a service.
func NewRouteService(repo routes.Repository) (*RouteService, error) {
	if repo == nil {
		return nil, errors.New("route service: nil repo")
	}
	return &RouteService{repo: repo}, nil
}

// List returns routes matching the filter.
func (s *RouteService) List(ctx context.Context, filter routes.Filter) ([]*routes.Route, error) {
	return s.repo.Find(ctx, filter)
}

// ListPage returns one page of matching routes with pagination metadata.
func (s *RouteService) ListPage(ctx context.Context, filter routes.Filter, page, limit int) (*RouteListing, error) {
	data, total, err := s.repo.FindPage(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &RouteListing{
		Data: data,
		Pagination: routes.Page{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// SetBaseline makes the named route the single baseline. The repository
// clears the previous flag and sets the new one atomically.
func (s *RouteService) SetBaseline(ctx context.Context, routeID string) error {
	route, err := s.repo.FindByID(ctx, routeID)
	if err != nil {
		return err
	}
	if route == nil {
		return fmt.Errorf("%w: %s", routes.ErrRouteNotFound, routeID)
	}
	return s.repo.SetBaseline(ctx, routeID)
}
