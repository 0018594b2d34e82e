package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	compliance "fueleu-maritime/internal/compliance/domain"
)

const defaultComplianceTable = "ship_compliance"

// ComplianceRepository is a Postgres implementation of the compliance store.
type ComplianceRepository struct {
	db    *sql.DB
	table string
}

// NewComplianceRepository constructs a repository.
func NewComplianceRepository(db *sql.DB, opts ...ComplianceRepositoryOption) *ComplianceRepository {
	repo := &ComplianceRepository{db: db, table: defaultComplianceTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ComplianceRepositoryOption configures the repository.
type ComplianceRepositoryOption func(*ComplianceRepository)

// WithComplianceTable overrides the default table.
func WithComplianceTable(table string) ComplianceRepositoryOption {
	return func(repo *ComplianceRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// FindByShipAndYear loads one record, nil when absent.
func (r *ComplianceRepository) FindByShipAndYear(ctx context.Context, shipID string, year int) (*compliance.ShipCompliance, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("compliance repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT ship_id, year, cb_gco2e, ghg_intensity, fuel_consumption, is_surplus
FROM %s
WHERE ship_id = $1 AND year = $2
LIMIT 1`, r.table)

	var rec compliance.ShipCompliance
	row := r.db.QueryRowContext(ctx, query, shipID, year)
	err := row.Scan(&rec.ShipID, &rec.Year, &rec.CBgCO2e, &rec.GHGIntensity, &rec.FuelConsumption, &rec.IsSurplus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindAllByYear lists the year's records ordered by ship id.
func (r *ComplianceRepository) FindAllByYear(ctx context.Context, year int) ([]*compliance.ShipCompliance, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("compliance repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT ship_id, year, cb_gco2e, ghg_intensity, fuel_consumption, is_surplus
FROM %s
WHERE year = $1
ORDER BY ship_id`, r.table)

	rows, err := r.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*compliance.ShipCompliance
	for rows.Next() {
		var rec compliance.ShipCompliance
		if err := rows.Scan(&rec.ShipID, &rec.Year, &rec.CBgCO2e, &rec.GHGIntensity, &rec.FuelConsumption, &rec.IsSurplus); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Upsert overwrites any record with the same ship and year.
func (r *ComplianceRepository) Upsert(ctx context.Context, record *compliance.ShipCompliance) error {
	if r == nil || r.db == nil {
		return errors.New("compliance repo: nil db")
	}
	if record == nil {
		return compliance.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (ship_id, year, cb_gco2e, ghg_intensity, fuel_consumption, is_surplus)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (ship_id, year) DO UPDATE SET
	cb_gco2e = EXCLUDED.cb_gco2e,
	ghg_intensity = EXCLUDED.ghg_intensity,
	fuel_consumption = EXCLUDED.fuel_consumption,
	is_surplus = EXCLUDED.is_surplus`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		record.ShipID, record.Year, record.CBgCO2e, record.GHGIntensity,
		record.FuelConsumption, record.IsSurplus)
	return err
}
