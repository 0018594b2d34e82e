package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	compliance "fueleu-maritime/internal/compliance/domain"
)

// ComplianceRepository is an in-memory compliance record store.
type ComplianceRepository struct {
	mu   sync.RWMutex
	data map[string]*compliance.ShipCompliance
}

// NewComplianceRepository constructs a repository.
func NewComplianceRepository() *ComplianceRepository {
	return &ComplianceRepository{data: make(map[string]*compliance.ShipCompliance)}
}

func key(shipID string, year int) string {
	return fmt.Sprintf("%s|%d", shipID, year)
}

// FindByShipAndYear loads one record, nil when absent.
func (r *ComplianceRepository) FindByShipAndYear(ctx context.Context, shipID string, year int) (*compliance.ShipCompliance, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec := r.data[key(shipID, year)]
	if rec == nil {
		return nil, nil
	}
	copy := *rec
	return &copy, nil
}

// FindAllByYear lists the year's records ordered by ship id.
func (r *ComplianceRepository) FindAllByYear(ctx context.Context, year int) ([]*compliance.ShipCompliance, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*compliance.ShipCompliance
	for _, rec := range r.data {
		if rec.Year == year {
			copy := *rec
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShipID < out[j].ShipID })
	return out, nil
}

// Upsert overwrites any record with the same ship and year.
func (r *ComplianceRepository) Upsert(ctx context.Context, record *compliance.ShipCompliance) error {
	_ = ctx
	if record == nil {
		return compliance.ErrNilRecord
	}
	copy := *record
	r.mu.Lock()
	r.data[key(record.ShipID, record.Year)] = &copy
	r.mu.Unlock()
	return nil
}
