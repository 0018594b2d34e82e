package integration_test

import (
	"context"
	"database/sql"
	"math"
	"os"
	"testing"

	bankapp "fueleu-maritime/internal/banking/application"
	bankrepo "fueleu-maritime/internal/banking/infrastructure/postgres"
	compapp "fueleu-maritime/internal/compliance/application"
	compliance "fueleu-maritime/internal/compliance/domain"
	comprepo "fueleu-maritime/internal/compliance/infrastructure/postgres"
	poolapp "fueleu-maritime/internal/pooling/application"
	poolrepo "fueleu-maritime/internal/pooling/infrastructure/postgres"
	routes "fueleu-maritime/internal/routes/domain"
	routerepo "fueleu-maritime/internal/routes/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Routes seeded by this test use the itest- prefix so cleanup cannot touch
// operator data.
const itestYear = 2098

func TestComplianceClosedLoop_Postgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if !tableExists(db, "routes") ||
		!tableExists(db, "ship_compliance") ||
		!tableExists(db, "bank_entries") ||
		!tableExists(db, "pools") ||
		!tableExists(db, "pool_members") {
		t.Skip("missing tables; run migrations")
	}

	ctx := context.Background()
	cleanup(ctx, t, db)
	t.Cleanup(func() { cleanup(ctx, t, db) })

	routeStore := routerepo.NewRouteRepository(db)
	compStore := comprepo.NewComplianceRepository(db)
	bankStore := bankrepo.NewBankRepository(db)
	poolStore := poolrepo.NewPoolRepository(db)

	seed := []*routes.Route{
		{RouteID: "itest-surplus", VesselType: "Container", FuelType: "LNG", Year: itestYear, GHGIntensity: 85.0, FuelConsumption: 5000, Distance: 12000, TotalEmissions: 17425000},
		{RouteID: "itest-deficit", VesselType: "Tanker", FuelType: "HFO", Year: itestYear, GHGIntensity: 93.0, FuelConsumption: 4000, Distance: 9000, TotalEmissions: 15252000},
	}
	for _, r := range seed {
		if err := routeStore.Save(ctx, r); err != nil {
			t.Fatalf("seed route %s: %v", r.RouteID, err)
		}
	}

	compSvc, err := compapp.NewComplianceService(routeStore, compStore, bankStore)
	if err != nil {
		t.Fatalf("new compliance service: %v", err)
	}
	bankSvc, err := bankapp.NewBankingService(bankStore, compStore, nil)
	if err != nil {
		t.Fatalf("new banking service: %v", err)
	}
	poolSvc, err := poolapp.NewPoolService(compStore, poolStore, nil)
	if err != nil {
		t.Fatalf("new pool service: %v", err)
	}

	records, err := compSvc.ComputeAll(ctx, itestYear)
	if err != nil {
		t.Fatalf("compute all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("computed %d records, want 2", len(records))
	}

	surplusRec, err := compStore.FindByShipAndYear(ctx, "itest-surplus", itestYear)
	if err != nil || surplusRec == nil {
		t.Fatalf("load surplus record: rec=%v err=%v", surplusRec, err)
	}
	wantSurplus := compliance.Round2(compliance.Balance(85.0, 5000, itestYear))
	if surplusRec.CBgCO2e != wantSurplus {
		t.Fatalf("surplus balance = %v, want %v", surplusRec.CBgCO2e, wantSurplus)
	}
	deficitRec, err := compStore.FindByShipAndYear(ctx, "itest-deficit", itestYear)
	if err != nil || deficitRec == nil {
		t.Fatalf("load deficit record: rec=%v err=%v", deficitRec, err)
	}
	if deficitRec.CBgCO2e >= 0 {
		t.Fatalf("deficit balance = %v, want negative", deficitRec.CBgCO2e)
	}

	banked, err := bankSvc.Bank(ctx, "itest-surplus", itestYear)
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if banked.BankedAmount != surplusRec.CBgCO2e {
		t.Fatalf("banked %v, want full surplus %v", banked.BankedAmount, surplusRec.CBgCO2e)
	}

	applyAmount := 100000.0
	applied, err := bankSvc.Apply(ctx, "itest-deficit", itestYear, applyAmount)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if math.Abs(applied.CBAfter-(deficitRec.CBgCO2e+applyAmount)) > 1e-6 {
		t.Fatalf("apply cbAfter = %v, want %v", applied.CBAfter, deficitRec.CBgCO2e+applyAmount)
	}

	reloaded, err := compStore.FindByShipAndYear(ctx, "itest-deficit", itestYear)
	if err != nil || reloaded == nil {
		t.Fatalf("reload deficit: rec=%v err=%v", reloaded, err)
	}
	if math.Abs(reloaded.CBgCO2e-applied.CBAfter) > 1e-6 {
		t.Fatalf("stored balance %v, want %v", reloaded.CBgCO2e, applied.CBAfter)
	}

	pool, err := bankSvc.AvailablePool(ctx)
	if err != nil {
		t.Fatalf("available pool: %v", err)
	}
	if math.Abs(pool.Available-(surplusRec.CBgCO2e-applyAmount)) > 1e-6 {
		t.Fatalf("pool available = %v, want %v", pool.Available, surplusRec.CBgCO2e-applyAmount)
	}

	created, err := poolSvc.Create(ctx, itestYear, []string{"itest-surplus", "itest-deficit"})
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	found, err := poolStore.FindByYear(ctx, itestYear)
	if err != nil {
		t.Fatalf("find pools: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.PoolID {
		t.Fatalf("stored pools = %+v, want id %s", found, created.PoolID)
	}
	if len(found[0].Members) != 2 {
		t.Fatalf("stored members = %+v", found[0].Members)
	}
	if math.Abs(found[0].TotalCBBefore()-found[0].TotalCBAfter()) > 0.02 {
		t.Fatalf("pool total not conserved: before %v, after %v", found[0].TotalCBBefore(), found[0].TotalCBAfter())
	}
}

func cleanup(ctx context.Context, t *testing.T, db *sql.DB) {
	t.Helper()
	_, _ = db.ExecContext(ctx, "DELETE FROM pool_members WHERE ship_id LIKE 'itest-%'")
	_, _ = db.ExecContext(ctx, "DELETE FROM pools WHERE year = $1", itestYear)
	_, _ = db.ExecContext(ctx, "DELETE FROM bank_entries WHERE ship_id LIKE 'itest-%'")
	_, _ = db.ExecContext(ctx, "DELETE FROM ship_compliance WHERE ship_id LIKE 'itest-%'")
	_, _ = db.ExecContext(ctx, "DELETE FROM routes WHERE route_id LIKE 'itest-%'")
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
