package compliance

import "errors"

var (
	// ErrNoRoutesForYear is returned when a year has no route data to compute from.
	ErrNoRoutesForYear = errors.New("compliance: no routes found for year")
	// ErrShipNotFound is returned when a ship has no record for the year.
	ErrShipNotFound = errors.New("compliance: ship not found")
	// ErrNilRecord is returned when persisting a nil record.
	ErrNilRecord = errors.New("compliance: nil record")
	// ErrInvalidYear is returned when a year fails to parse.
	ErrInvalidYear = errors.New("compliance: invalid year")
)
