package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	banking "fueleu-maritime/internal/banking/domain"
)

const defaultBankTable = "bank_entries"

// BankRepository is a Postgres implementation of the banking ledger.
// Rows are append-only; totals are aggregated on every query.
type BankRepository struct {
	db    *sql.DB
	table string
}

// NewBankRepository constructs a repository.
func NewBankRepository(db *sql.DB, opts ...BankRepositoryOption) *BankRepository {
	repo := &BankRepository{db: db, table: defaultBankTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// BankRepositoryOption configures the repository.
type BankRepositoryOption func(*BankRepository)

// WithBankTable overrides the default table.
func WithBankTable(table string) BankRepositoryOption {
	return func(repo *BankRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Save appends one ledger entry.
func (r *BankRepository) Save(ctx context.Context, entry *banking.Entry) error {
	if r == nil || r.db == nil {
		return errors.New("bank repo: nil db")
	}
	if entry == nil {
		return banking.ErrNilEntry
	}

	query := fmt.Sprintf(`
INSERT INTO %s (ship_id, year, amount_gco2e, created_at)
VALUES ($1,$2,$3,$4)`, r.table)

	_, err := r.db.ExecContext(ctx, query, entry.ShipID, entry.Year, entry.AmountGCO2e, entry.CreatedAt.UTC())
	return err
}

// Find lists matching entries, newest first.
func (r *BankRepository) Find(ctx context.Context, filter banking.Filter) ([]*banking.Entry, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("bank repo: nil db")
	}

	var clauses []string
	var args []any
	if filter.ShipID != "" {
		args = append(args, filter.ShipID)
		clauses = append(clauses, fmt.Sprintf("ship_id = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		clauses = append(clauses, fmt.Sprintf("year = $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	query := fmt.Sprintf("SELECT ship_id, year, amount_gco2e, created_at FROM %s%s ORDER BY created_at DESC", r.table, where)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*banking.Entry
	for rows.Next() {
		var entry banking.Entry
		if err := rows.Scan(&entry.ShipID, &entry.Year, &entry.AmountGCO2e, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &entry)
	}
	return out, rows.Err()
}

// TotalBanked sums positive amounts, optionally for one ship.
func (r *BankRepository) TotalBanked(ctx context.Context, shipID string) (float64, error) {
	return r.sumWhere(ctx, "amount_gco2e > 0", shipID, false)
}

// TotalApplied sums negative amounts and reports the magnitude, optionally
// for one ship.
func (r *BankRepository) TotalApplied(ctx context.Context, shipID string) (float64, error) {
	return r.sumWhere(ctx, "amount_gco2e < 0", shipID, true)
}

func (r *BankRepository) sumWhere(ctx context.Context, sign string, shipID string, negate bool) (float64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("bank repo: nil db")
	}

	query := fmt.Sprintf("SELECT COALESCE(SUM(amount_gco2e), 0) FROM %s WHERE %s", r.table, sign)
	var args []any
	if shipID != "" {
		query += " AND ship_id = $1"
		args = append(args, shipID)
	}

	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	if negate {
		total = -total
	}
	return total, nil
}
