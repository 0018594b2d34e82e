package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	pooling "fueleu-maritime/internal/pooling/domain"
)

const (
	defaultPoolTable       = "pools"
	defaultPoolMemberTable = "pool_members"
)

// PoolRepository is a Postgres implementation of the pool store. Members are
// kept in a child table ordered by position so the allocation order survives
// a round trip.
type PoolRepository struct {
	db          *sql.DB
	table       string
	memberTable string
}

// NewPoolRepository constructs a repository.
func NewPoolRepository(db *sql.DB, opts ...PoolRepositoryOption) *PoolRepository {
	repo := &PoolRepository{db: db, table: defaultPoolTable, memberTable: defaultPoolMemberTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// PoolRepositoryOption configures the repository.
type PoolRepositoryOption func(*PoolRepository)

// WithPoolTables overrides the default tables.
func WithPoolTables(pools, members string) PoolRepositoryOption {
	return func(repo *PoolRepository) {
		if pools != "" {
			repo.table = pools
		}
		if members != "" {
			repo.memberTable = members
		}
	}
}

// Save persists a pool and its members in one transaction.
func (r *PoolRepository) Save(ctx context.Context, pool *pooling.Pool) error {
	if r == nil || r.db == nil {
		return errors.New("pool repo: nil db")
	}
	if pool == nil {
		return pooling.ErrNilPool
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, year, created_at) VALUES ($1,$2,$3)", r.table),
		pool.ID, pool.Year, pool.CreatedAt.UTC()); err != nil {
		return err
	}
	for position, member := range pool.Members {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (pool_id, position, ship_id, cb_before, cb_after) VALUES ($1,$2,$3,$4,$5)", r.memberTable),
			pool.ID, position, member.ShipID, member.CBBefore, member.CBAfter); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindByYear lists one year's pools, oldest first.
func (r *PoolRepository) FindByYear(ctx context.Context, year int) ([]*pooling.Pool, error) {
	return r.find(ctx, "WHERE year = $1", year)
}

// FindAll lists every pool, oldest first.
func (r *PoolRepository) FindAll(ctx context.Context) ([]*pooling.Pool, error) {
	return r.find(ctx, "")
}

func (r *PoolRepository) find(ctx context.Context, where string, args ...any) ([]*pooling.Pool, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("pool repo: nil db")
	}

	query := fmt.Sprintf("SELECT id, year, created_at FROM %s %s ORDER BY created_at", r.table, where)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pools []*pooling.Pool
	for rows.Next() {
		var pool pooling.Pool
		if err := rows.Scan(&pool.ID, &pool.Year, &pool.CreatedAt); err != nil {
			return nil, err
		}
		pools = append(pools, &pool)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, pool := range pools {
		members, err := r.findMembers(ctx, pool.ID)
		if err != nil {
			return nil, err
		}
		pool.Members = members
	}
	return pools, nil
}

func (r *PoolRepository) findMembers(ctx context.Context, poolID string) ([]pooling.Member, error) {
	query := fmt.Sprintf("SELECT ship_id, cb_before, cb_after FROM %s WHERE pool_id = $1 ORDER BY position", r.memberTable)
	rows, err := r.db.QueryContext(ctx, query, poolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []pooling.Member
	for rows.Next() {
		var m pooling.Member
		if err := rows.Scan(&m.ShipID, &m.CBBefore, &m.CBAfter); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
