package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	compliance "fueleu-maritime/internal/compliance/domain"
	"fueleu-maritime/internal/observability/metrics"
	pooling "fueleu-maritime/internal/pooling/domain"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Result is the outcome of creating a pool.
type Result struct {
	PoolID        string           `json:"poolId"`
	Year          int              `json:"year"`
	Members       []pooling.Member `json:"members"`
	TotalCBBefore float64          `json:"totalCBBefore"`
	TotalCBAfter  float64          `json:"totalCBAfter"`
}

// PoolService creates and lists pools.
type PoolService struct {
	complianceRepo compliance.Repository
	repo           pooling.Repository
	clock          Clock
}

// NewPoolService constructs a service.
func NewPoolService(complianceRepo compliance.Repository, repo pooling.Repository, clock Clock) (*PoolService, error) {
	if complianceRepo == nil {
		return nil, errors.New("pool service: nil compliance repo")
	}
	if repo == nil {
		return nil, errors.New("pool service: nil pool repo")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &PoolService{complianceRepo: complianceRepo, repo: repo, clock: clock}, nil
}

// Create validates the member set, runs the greedy allocation and persists
// the pool. Nothing is persisted on any failure, and members' compliance
// records are never rewritten: pooling is an allocation record, not a ledger
// mutation.
func (s *PoolService) Create(ctx context.Context, year int, memberShipIDs []string) (*Result, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObservePoolCreate(result, time.Since(start))
	}()

	if len(memberShipIDs) < 2 {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w: got %d", pooling.ErrTooFewMembers, len(memberShipIDs))
	}

	members := make([]pooling.Member, 0, len(memberShipIDs))
	for _, shipID := range memberShipIDs {
		rec, err := s.complianceRepo.FindByShipAndYear(ctx, shipID, year)
		if err != nil {
			result = metrics.ResultError
			return nil, err
		}
		if rec == nil {
			result = metrics.ResultError
			return nil, fmt.Errorf("%w: ship %s year %d", pooling.ErrMemberNotFound, shipID, year)
		}
		members = append(members, pooling.Member{
			ShipID:   shipID,
			CBBefore: rec.CBgCO2e,
			CBAfter:  rec.CBgCO2e,
		})
	}

	var totalBefore float64
	for _, m := range members {
		totalBefore += m.CBBefore
	}

	allocated, err := pooling.Allocate(members)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	for i := range allocated {
		allocated[i].CBBefore = compliance.Round2(allocated[i].CBBefore)
		allocated[i].CBAfter = compliance.Round2(allocated[i].CBAfter)
	}
	var totalAfter float64
	for _, m := range allocated {
		totalAfter += m.CBAfter
	}

	pool := &pooling.Pool{
		ID:        uuid.NewString(),
		Year:      year,
		Members:   allocated,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Save(ctx, pool); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	return &Result{
		PoolID:        pool.ID,
		Year:          year,
		Members:       allocated,
		TotalCBBefore: compliance.Round2(totalBefore),
		TotalCBAfter:  compliance.Round2(totalAfter),
	}, nil
}

// List returns every pool, or only one year's when year is non-zero.
func (s *PoolService) List(ctx context.Context, year int) ([]*pooling.Pool, error) {
	if year != 0 {
		return s.repo.FindByYear(ctx, year)
	}
	return s.repo.FindAll(ctx)
}
