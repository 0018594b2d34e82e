package memory

import (
	"context"
	"sync"

	banking "fueleu-maritime/internal/banking/domain"
)

// BankRepository is an in-memory append-only ledger.
type BankRepository struct {
	mu      sync.RWMutex
	entries []*banking.Entry
}

// NewBankRepository constructs a repository.
func NewBankRepository() *BankRepository {
	return &BankRepository{}
}

// Save appends an entry.
func (r *BankRepository) Save(ctx context.Context, entry *banking.Entry) error {
	_ = ctx
	if entry == nil {
		return banking.ErrNilEntry
	}
	copy := *entry
	r.mu.Lock()
	r.entries = append(r.entries, &copy)
	r.mu.Unlock()
	return nil
}

// Find lists matching entries, newest first.
func (r *BankRepository) Find(ctx context.Context, filter banking.Filter) ([]*banking.Entry, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*banking.Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if filter.Matches(r.entries[i]) {
			copy := *r.entries[i]
			out = append(out, &copy)
		}
	}
	return out, nil
}

// TotalBanked sums positive amounts, optionally for one ship.
func (r *BankRepository) TotalBanked(ctx context.Context, shipID string) (float64, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, e := range r.entries {
		if e.AmountGCO2e > 0 && (shipID == "" || e.ShipID == shipID) {
			total += e.AmountGCO2e
		}
	}
	return total, nil
}

// TotalApplied sums the magnitude of negative amounts, optionally for one ship.
func (r *BankRepository) TotalApplied(ctx context.Context, shipID string) (float64, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, e := range r.entries {
		if e.AmountGCO2e < 0 && (shipID == "" || e.ShipID == shipID) {
			total += -e.AmountGCO2e
		}
	}
	return total, nil
}
