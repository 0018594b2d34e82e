package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	banking "fueleu-maritime/internal/banking/domain"
	compliance "fueleu-maritime/internal/compliance/domain"
	"fueleu-maritime/internal/observability/metrics"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// BankingService runs the surplus banking ledger. Applying reads the global
// pool and then writes, so applies are serialized behind a single-writer
// mutex; without it concurrent applies could overdraw the shared pool.
type BankingService struct {
	repo           banking.Repository
	complianceRepo compliance.Repository
	clock          Clock

	applyMu sync.Mutex
}

// NewBankingService constructs a service.
func NewBankingService(repo banking.Repository, complianceRepo compliance.Repository, clock Clock) (*BankingService, error) {
	if repo == nil {
		return nil, errors.New("banking service: nil bank repo")
	}
	if complianceRepo == nil {
		return nil, errors.New("banking service: nil compliance repo")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &BankingService{repo: repo, complianceRepo: complianceRepo, clock: clock}, nil
}

// Bank records the ship's current positive balance as a ledger deposit. The
// compliance record itself is left untouched.
func (s *BankingService) Bank(ctx context.Context, shipID string, year int) (*banking.BankResult, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveBankSurplus(result, time.Since(start))
	}()

	rec, err := s.complianceRepo.FindByShipAndYear(ctx, shipID, year)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if rec == nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w for ship %s year %d", banking.ErrNoComplianceRecord, shipID, year)
	}
	if rec.CBgCO2e <= 0 {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w: current CB %.2f", banking.ErrNonPositiveBalance, rec.CBgCO2e)
	}

	entry := &banking.Entry{
		ShipID:      shipID,
		Year:        year,
		AmountGCO2e: rec.CBgCO2e,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	return &banking.BankResult{
		ShipID:       shipID,
		Year:         year,
		BankedAmount: rec.CBgCO2e,
		Message:      fmt.Sprintf("banked %.2f gCO2eq", rec.CBgCO2e),
	}, nil
}

// Apply draws from the shared banked pool to raise the ship's balance. The
// pool is global: surplus banked by any ship can cover any ship's deficit.
func (s *BankingService) Apply(ctx context.Context, shipID string, year int, amount float64) (*banking.ApplyResult, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveApplyBanked(result, time.Since(start))
	}()

	if amount <= 0 {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w: got %.2f", banking.ErrNonPositiveAmount, amount)
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	rec, err := s.complianceRepo.FindByShipAndYear(ctx, shipID, year)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if rec == nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w for ship %s year %d", banking.ErrNoComplianceRecord, shipID, year)
	}

	pool, err := s.AvailablePool(ctx)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if amount > pool.Available {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w: available %.2f, requested %.2f", banking.ErrInsufficientFunds, pool.Available, amount)
	}

	entry := &banking.Entry{
		ShipID:      shipID,
		Year:        year,
		AmountGCO2e: -amount,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	cbBefore := rec.CBgCO2e
	cbAfter := cbBefore + amount
	if err := s.complianceRepo.Upsert(ctx, rec.WithBalance(cbAfter)); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	return &banking.ApplyResult{
		ShipID:   shipID,
		Year:     year,
		CBBefore: cbBefore,
		Applied:  amount,
		CBAfter:  cbAfter,
	}, nil
}

// AvailablePool aggregates the global pool across all ships and years.
func (s *BankingService) AvailablePool(ctx context.Context) (*banking.PoolBalance, error) {
	banked, err := s.repo.TotalBanked(ctx, "")
	if err != nil {
		return nil, err
	}
	applied, err := s.repo.TotalApplied(ctx, "")
	if err != nil {
		return nil, err
	}
	return &banking.PoolBalance{
		TotalBanked:  banked,
		TotalApplied: applied,
		Available:    banked - applied,
	}, nil
}

// ShipAvailable aggregates one ship's own entries. This is deliberately
// narrower than AvailablePool and the two must stay distinct operations.
func (s *BankingService) ShipAvailable(ctx context.Context, shipID string) (*banking.PoolBalance, error) {
	banked, err := s.repo.TotalBanked(ctx, shipID)
	if err != nil {
		return nil, err
	}
	applied, err := s.repo.TotalApplied(ctx, shipID)
	if err != nil {
		return nil, err
	}
	return &banking.PoolBalance{
		TotalBanked:  banked,
		TotalApplied: applied,
		Available:    banked - applied,
	}, nil
}

// Records lists ledger entries, newest first.
func (s *BankingService) Records(ctx context.Context, filter banking.Filter) ([]*banking.Entry, error) {
	return s.repo.Find(ctx, filter)
}
