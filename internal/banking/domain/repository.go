package banking

import "context"

// Repository persists the append-only banking ledger. Totals are derived by
// aggregation over the entries rather than kept as a running balance.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	// Find returns matching entries, newest first.
	Find(ctx context.Context, filter Filter) ([]*Entry, error)
	// TotalBanked sums positive amounts. An empty shipID spans all ships.
	TotalBanked(ctx context.Context, shipID string) (float64, error)
	// TotalApplied sums negative amounts and reports the magnitude.
	// An empty shipID spans all ships.
	TotalApplied(ctx context.Context, shipID string) (float64, error)
}
