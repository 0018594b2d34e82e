package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	routes "fueleu-maritime/internal/routes/domain"
)

const defaultRouteTable = "routes"

// RouteRepository is a Postgres implementation of the route store.
type RouteRepository struct {
	db    *sql.DB
	table string
}

// NewRouteRepository constructs a repository.
func NewRouteRepository(db *sql.DB, opts ...RouteRepositoryOption) *RouteRepository {
	repo := &RouteRepository{db: db, table: defaultRouteTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// RouteRepositoryOption configures the repository.
type RouteRepositoryOption func(*RouteRepository)

// WithRouteTable overrides the default table.
func WithRouteTable(table string) RouteRepositoryOption {
	return func(repo *RouteRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

const routeColumns = "route_id, vessel_type, fuel_type, year, ghg_intensity, fuel_consumption, distance, total_emissions, is_baseline"

// Find lists routes matching the filter ordered by route id.
func (r *RouteRepository) Find(ctx context.Context, filter routes.Filter) ([]*routes.Route, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("route repo: nil db")
	}

	where, args := buildWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY route_id", routeColumns, r.table, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutes(rows)
}

// FindPage returns one page of matching routes plus the unpaged total.
func (r *RouteRepository) FindPage(ctx context.Context, filter routes.Filter, page, limit int) ([]*routes.Route, int, error) {
	if r == nil || r.db == nil {
		return nil, 0, errors.New("route repo: nil db")
	}

	where, args := buildWhere(filter)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.table, where)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY route_id", routeColumns, r.table, where)
	if page >= 1 && limit >= 1 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, (page-1)*limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	found, err := scanRoutes(rows)
	if err != nil {
		return nil, 0, err
	}
	return found, total, nil
}

// FindByID loads one route, nil when unknown.
func (r *RouteRepository) FindByID(ctx context.Context, routeID string) (*routes.Route, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("route repo: nil db")
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE route_id = $1 LIMIT 1", routeColumns, r.table)
	route, err := scanRoute(r.db.QueryRowContext(ctx, query, routeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return route, err
}

// FindBaseline loads the baseline route, nil when none is flagged.
func (r *RouteRepository) FindBaseline(ctx context.Context) (*routes.Route, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("route repo: nil db")
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE is_baseline LIMIT 1", routeColumns, r.table)
	route, err := scanRoute(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return route, err
}

// SetBaseline clears every baseline flag and sets the named route's in one
// transaction, so readers never observe two baselines.
func (r *RouteRepository) SetBaseline(ctx context.Context, routeID string) error {
	if r == nil || r.db == nil {
		return errors.New("route repo: nil db")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET is_baseline = FALSE WHERE is_baseline", r.table)); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET is_baseline = TRUE WHERE route_id = $1", r.table), routeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", routes.ErrRouteNotFound, routeID)
	}
	return tx.Commit()
}

// Save upserts a route by route id.
func (r *RouteRepository) Save(ctx context.Context, route *routes.Route) error {
	if r == nil || r.db == nil {
		return errors.New("route repo: nil db")
	}
	if route == nil {
		return routes.ErrNilRoute
	}

	query := fmt.Sprintf(`
INSERT INTO %s (%s)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (route_id) DO UPDATE SET
	vessel_type = EXCLUDED.vessel_type,
	fuel_type = EXCLUDED.fuel_type,
	year = EXCLUDED.year,
	ghg_intensity = EXCLUDED.ghg_intensity,
	fuel_consumption = EXCLUDED.fuel_consumption,
	distance = EXCLUDED.distance,
	total_emissions = EXCLUDED.total_emissions,
	is_baseline = EXCLUDED.is_baseline`, r.table, routeColumns)

	_, err := r.db.ExecContext(ctx, query,
		route.RouteID, route.VesselType, route.FuelType, route.Year,
		route.GHGIntensity, route.FuelConsumption, route.Distance,
		route.TotalEmissions, route.IsBaseline)
	return err
}

func buildWhere(filter routes.Filter) (string, []any) {
	var clauses []string
	var args []any
	if filter.VesselType != "" {
		args = append(args, filter.VesselType)
		clauses = append(clauses, fmt.Sprintf("vessel_type = $%d", len(args)))
	}
	if filter.FuelType != "" {
		args = append(args, filter.FuelType)
		clauses = append(clauses, fmt.Sprintf("fuel_type = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		clauses = append(clauses, fmt.Sprintf("year = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*routes.Route, error) {
	var route routes.Route
	err := row.Scan(&route.RouteID, &route.VesselType, &route.FuelType, &route.Year,
		&route.GHGIntensity, &route.FuelConsumption, &route.Distance,
		&route.TotalEmissions, &route.IsBaseline)
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func scanRoutes(rows *sql.Rows) ([]*routes.Route, error) {
	var out []*routes.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, route)
	}
	return out, rows.Err()
}
