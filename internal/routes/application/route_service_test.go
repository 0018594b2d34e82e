package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	routes "fueleu-maritime/internal/routes/domain"
	routemem "fueleu-maritime/internal/routes/infrastructure/memory"
)

func newRouteFixture(t *testing.T, count int) (*RouteService, *routemem.RouteRepository) {
	t.Helper()
	repo := routemem.NewRouteRepository()
	ctx := context.Background()
	for i := 1; i <= count; i++ {
		vessel := "Container"
		if i%2 == 0 {
			vessel = "Tanker"
		}
		route := &routes.Route{
			RouteID:         fmt.Sprintf("R%03d", i),
			VesselType:      vessel,
			FuelType:        "HFO",
			Year:            2024,
			GHGIntensity:    90,
			FuelConsumption: 1000,
		}
		if err := repo.Save(ctx, route); err != nil {
			t.Fatalf("seed route: %v", err)
		}
	}
	svc, err := NewRouteService(repo)
	if err != nil {
		t.Fatalf("new route service: %v", err)
	}
	return svc, repo
}

func TestListAppliesFilter(t *testing.T) {
	svc, _ := newRouteFixture(t, 6)

	all, err := svc.List(context.Background(), routes.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("got %d routes, want 6", len(all))
	}

	tankers, err := svc.List(context.Background(), routes.Filter{VesselType: "Tanker"})
	if err != nil {
		t.Fatalf("list tankers: %v", err)
	}
	if len(tankers) != 3 {
		t.Fatalf("got %d tankers, want 3", len(tankers))
	}
	for _, r := range tankers {
		if r.VesselType != "Tanker" {
			t.Fatalf("filter leaked %s (%s)", r.RouteID, r.VesselType)
		}
	}
}

func TestListPagePagination(t *testing.T) {
	svc, _ := newRouteFixture(t, 5)

	listing, err := svc.ListPage(context.Background(), routes.Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(listing.Data) != 2 {
		t.Fatalf("page 2 has %d routes, want 2", len(listing.Data))
	}
	if listing.Data[0].RouteID != "R003" || listing.Data[1].RouteID != "R004" {
		t.Fatalf("page 2 = %s, %s; want R003, R004", listing.Data[0].RouteID, listing.Data[1].RouteID)
	}
	p := listing.Pagination
	if p.Page != 2 || p.Limit != 2 || p.Total != 5 || p.TotalPages != 3 {
		t.Fatalf("pagination = %+v, want page 2 limit 2 total 5 totalPages 3", p)
	}
}

func TestListPageBeyondEnd(t *testing.T) {
	svc, _ := newRouteFixture(t, 3)

	listing, err := svc.ListPage(context.Background(), routes.Filter{}, 5, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(listing.Data) != 0 {
		t.Fatalf("page past the end returned %d routes", len(listing.Data))
	}
	if listing.Pagination.Total != 3 {
		t.Fatalf("total = %d, want 3", listing.Pagination.Total)
	}
}

func TestSetBaselineMovesFlag(t *testing.T) {
	svc, repo := newRouteFixture(t, 3)
	ctx := context.Background()

	if err := svc.SetBaseline(ctx, "R001"); err != nil {
		t.Fatalf("set baseline R001: %v", err)
	}
	if err := svc.SetBaseline(ctx, "R002"); err != nil {
		t.Fatalf("set baseline R002: %v", err)
	}

	baseline, err := repo.FindBaseline(ctx)
	if err != nil {
		t.Fatalf("find baseline: %v", err)
	}
	if baseline == nil || baseline.RouteID != "R002" {
		t.Fatalf("baseline = %+v, want R002", baseline)
	}

	// Exactly one route may carry the flag.
	all, err := repo.Find(ctx, routes.Filter{})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	flagged := 0
	for _, r := range all {
		if r.IsBaseline {
			flagged++
		}
	}
	if flagged != 1 {
		t.Fatalf("%d routes flagged as baseline, want 1", flagged)
	}
}

func TestSetBaselineUnknownRoute(t *testing.T) {
	svc, _ := newRouteFixture(t, 1)

	if err := svc.SetBaseline(context.Background(), "R999"); !errors.Is(err, routes.ErrRouteNotFound) {
		t.Fatalf("got %v, want ErrRouteNotFound", err)
	}
}
