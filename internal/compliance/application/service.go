package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	banking "fueleu-maritime/internal/banking/domain"
	compliance "fueleu-maritime/internal/compliance/domain"
	"fueleu-maritime/internal/observability/metrics"
	routes "fueleu-maritime/internal/routes/domain"
)

// ComplianceService computes and stores ship compliance balances. Route ids
// stand in for ship ids: each route of a year yields one compliance record.
type ComplianceService struct {
	routeRepo routes.Repository
	repo      compliance.Repository
	bankRepo  banking.Repository
}

// NewComplianceService constructs a service.
func NewComplianceService(routeRepo routes.Repository, repo compliance.Repository, bankRepo banking.Repository) (*ComplianceService, error) {
	if routeRepo == nil {
		return nil, errors.New("compliance service: nil route repo")
	}
	if repo == nil {
		return nil, errors.New("compliance service: nil compliance repo")
	}
	if bankRepo == nil {
		return nil, errors.New("compliance service: nil bank repo")
	}
	return &ComplianceService{routeRepo: routeRepo, repo: repo, bankRepo: bankRepo}, nil
}

// ComputeAll computes the balance for every route of the year and upserts
// each record. Recomputation overwrites balances already adjusted by banking.
func (s *ComplianceService) ComputeAll(ctx context.Context, year int) ([]*compliance.ShipCompliance, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveComputeCB(result, time.Since(start))
	}()

	records, err := s.computeYear(ctx, year)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	for _, rec := range records {
		if err := s.repo.Upsert(ctx, rec); err != nil {
			result = metrics.ResultError
			return nil, err
		}
	}
	return records, nil
}

// ComputeForShip computes the year's balances and persists only the named
// ship's record.
func (s *ComplianceService) ComputeForShip(ctx context.Context, shipID string, year int) (*compliance.ShipCompliance, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveComputeCB(result, time.Since(start))
	}()

	records, err := s.computeYear(ctx, year)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	for _, rec := range records {
		if rec.ShipID == shipID {
			if err := s.repo.Upsert(ctx, rec); err != nil {
				result = metrics.ResultError
				return nil, err
			}
			return rec, nil
		}
	}
	result = metrics.ResultError
	return nil, fmt.Errorf("%w: ship %s year %d", compliance.ErrShipNotFound, shipID, year)
}

func (s *ComplianceService) computeYear(ctx context.Context, year int) ([]*compliance.ShipCompliance, error) {
	found, err := s.routeRepo.Find(ctx, routes.Filter{Year: year})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w %d", compliance.ErrNoRoutesForYear, year)
	}

	records := make([]*compliance.ShipCompliance, 0, len(found))
	for _, route := range found {
		cb := compliance.Balance(route.GHGIntensity, route.FuelConsumption, route.Year)
		records = append(records, compliance.NewShipCompliance(route.RouteID, route.Year, cb, route.GHGIntensity, route.FuelConsumption))
	}
	return records, nil
}

// AdjustedForShip returns the ship's balance adjusted by its own banked
// surplus. The adjustment sums only that ship's ledger entries; the global
// pool is consulted only when applying.
func (s *ComplianceService) AdjustedForShip(ctx context.Context, shipID string, year int) (*compliance.AdjustedBalance, error) {
	rec, err := s.repo.FindByShipAndYear(ctx, shipID, year)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: ship %s year %d", compliance.ErrShipNotFound, shipID, year)
	}
	return s.adjust(ctx, rec)
}

// AdjustedAll returns the adjusted balance for every compliance record of the
// year.
func (s *ComplianceService) AdjustedAll(ctx context.Context, year int) ([]*compliance.AdjustedBalance, error) {
	records, err := s.repo.FindAllByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	out := make([]*compliance.AdjustedBalance, 0, len(records))
	for _, rec := range records {
		adjusted, err := s.adjust(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, adjusted)
	}
	return out, nil
}

func (s *ComplianceService) adjust(ctx context.Context, rec *compliance.ShipCompliance) (*compliance.AdjustedBalance, error) {
	banked, err := s.bankRepo.TotalBanked(ctx, rec.ShipID)
	if err != nil {
		return nil, err
	}
	applied, err := s.bankRepo.TotalApplied(ctx, rec.ShipID)
	if err != nil {
		return nil, err
	}
	available := banked - applied
	adjusted := rec.CBgCO2e + available
	return &compliance.AdjustedBalance{
		ShipID:          rec.ShipID,
		Year:            rec.Year,
		OriginalCB:      rec.CBgCO2e,
		BankedAvailable: available,
		AdjustedCB:      adjusted,
		IsSurplus:       adjusted > 0,
	}, nil
}
