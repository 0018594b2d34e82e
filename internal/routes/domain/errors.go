package routes

import "errors"

var (
	// ErrRouteNotFound is returned when a route id is unknown.
	ErrRouteNotFound = errors.New("routes: route not found")
	// ErrNoBaseline is returned when no route has the baseline flag.
	ErrNoBaseline = errors.New("routes: no baseline route set")
	// ErrNilRoute is returned when persisting a nil route.
	ErrNilRoute = errors.New("routes: nil route")
)
