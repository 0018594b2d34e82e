package compliance

import "context"

// Repository persists ship compliance records.
type Repository interface {
	// FindByShipAndYear returns nil, nil when no record exists.
	FindByShipAndYear(ctx context.Context, shipID string, year int) (*ShipCompliance, error)
	FindAllByYear(ctx context.Context, year int) ([]*ShipCompliance, error)
	// Upsert overwrites any existing record for the same ship and year.
	Upsert(ctx context.Context, record *ShipCompliance) error
}
