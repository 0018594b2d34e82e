package memory

import (
	"context"
	"sync"

	pooling "fueleu-maritime/internal/pooling/domain"
)

// PoolRepository is an in-memory pool store.
type PoolRepository struct {
	mu    sync.RWMutex
	pools []*pooling.Pool
}

// NewPoolRepository constructs a repository.
func NewPoolRepository() *PoolRepository {
	return &PoolRepository{}
}

// Save appends a pool.
func (r *PoolRepository) Save(ctx context.Context, pool *pooling.Pool) error {
	_ = ctx
	if pool == nil {
		return pooling.ErrNilPool
	}
	copy := clonePool(pool)
	r.mu.Lock()
	r.pools = append(r.pools, copy)
	r.mu.Unlock()
	return nil
}

// FindByYear lists the year's pools in creation order.
func (r *PoolRepository) FindByYear(ctx context.Context, year int) ([]*pooling.Pool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*pooling.Pool
	for _, p := range r.pools {
		if p.Year == year {
			out = append(out, clonePool(p))
		}
	}
	return out, nil
}

// FindAll lists every pool in creation order.
func (r *PoolRepository) FindAll(ctx context.Context) ([]*pooling.Pool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*pooling.Pool, 0, len(r.pools))
	for _, p := range r.pools {
		out = append(out, clonePool(p))
	}
	return out, nil
}

func clonePool(p *pooling.Pool) *pooling.Pool {
	copy := *p
	copy.Members = make([]pooling.Member, len(p.Members))
	for i, m := range p.Members {
		copy.Members[i] = m
	}
	return &copy
}
