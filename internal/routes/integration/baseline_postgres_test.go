package integration_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	routeapp "fueleu-maritime/internal/routes/application"
	routes "fueleu-maritime/internal/routes/domain"
	routerepo "fueleu-maritime/internal/routes/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestBaselineFlagMoves_Postgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if !tableExists(db, "routes") {
		t.Skip("missing tables; run migrations")
	}

	ctx := context.Background()
	clean := func() {
		_, _ = db.ExecContext(ctx, "DELETE FROM routes WHERE route_id LIKE 'itest-bl-%'")
	}
	clean()
	t.Cleanup(clean)

	store := routerepo.NewRouteRepository(db)
	for _, r := range []*routes.Route{
		{RouteID: "itest-bl-a", VesselType: "Container", FuelType: "HFO", Year: 2097, GHGIntensity: 91.0, FuelConsumption: 5000},
		{RouteID: "itest-bl-b", VesselType: "Tanker", FuelType: "LNG", Year: 2097, GHGIntensity: 88.0, FuelConsumption: 4200},
	} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("seed route %s: %v", r.RouteID, err)
		}
	}

	svc, err := routeapp.NewRouteService(store)
	if err != nil {
		t.Fatalf("new route service: %v", err)
	}

	if err := svc.SetBaseline(ctx, "itest-bl-a"); err != nil {
		t.Fatalf("set baseline a: %v", err)
	}
	if err := svc.SetBaseline(ctx, "itest-bl-b"); err != nil {
		t.Fatalf("set baseline b: %v", err)
	}

	baseline, err := store.FindBaseline(ctx)
	if err != nil {
		t.Fatalf("find baseline: %v", err)
	}
	if baseline == nil || baseline.RouteID != "itest-bl-b" {
		t.Fatalf("baseline = %+v, want itest-bl-b", baseline)
	}

	var flagged int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM routes WHERE route_id LIKE 'itest-bl-%' AND is_baseline").Scan(&flagged)
	if err != nil {
		t.Fatalf("count flags: %v", err)
	}
	if flagged != 1 {
		t.Fatalf("%d seeded routes flagged as baseline, want 1", flagged)
	}
}

func tableExists(db *sql.DB, table string) bool {
	var exists bool
	err := db.QueryRow(`
SELECT EXISTS (
	SELECT 1
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_name = $1
)`, table).Scan(&exists)
	if err != nil {
		return false
	}
	return exists
}
