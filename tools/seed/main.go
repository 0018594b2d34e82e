// Command seed loads the demo route fleet into Postgres. The builtin fleet
// mirrors the reporting years 2023-2026; an alternative fleet can be supplied
// as a YAML file via -fleet.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	routes "fueleu-maritime/internal/routes/domain"
	routerepo "fueleu-maritime/internal/routes/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gopkg.in/yaml.v3"
)

type fleetFile struct {
	Routes []seedRoute `yaml:"routes"`
}

type seedRoute struct {
	RouteID         string  `yaml:"routeId"`
	VesselType      string  `yaml:"vesselType"`
	FuelType        string  `yaml:"fuelType"`
	Year            int     `yaml:"year"`
	GHGIntensity    float64 `yaml:"ghgIntensity"`
	FuelConsumption float64 `yaml:"fuelConsumption"`
	Distance        float64 `yaml:"distance"`
	TotalEmissions  float64 `yaml:"totalEmissions"`
	IsBaseline      bool    `yaml:"isBaseline"`
}

func main() {
	var (
		dsn       = flag.String("dsn", envDefault("DATABASE_URL", os.Getenv("PG_DSN")), "postgres dsn")
		fleetPath = flag.String("fleet", "", "optional YAML fleet file")
		truncate  = flag.Bool("truncate", false, "delete existing routes first")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DATABASE_URL, PG_DSN or -dsn is required")
	}

	fleet := defaultFleet
	if *fleetPath != "" {
		loaded, err := loadFleet(*fleetPath)
		if err != nil {
			log.Fatalf("load fleet: %v", err)
		}
		fleet = loaded
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if *truncate {
		if _, err := db.ExecContext(ctx, "DELETE FROM routes"); err != nil {
			log.Fatalf("clear routes: %v", err)
		}
		log.Print("cleared existing routes")
	}

	repo := routerepo.NewRouteRepository(db)
	for _, sr := range fleet {
		route := &routes.Route{
			RouteID:         sr.RouteID,
			VesselType:      sr.VesselType,
			FuelType:        sr.FuelType,
			Year:            sr.Year,
			GHGIntensity:    sr.GHGIntensity,
			FuelConsumption: sr.FuelConsumption,
			Distance:        sr.Distance,
			TotalEmissions:  sr.TotalEmissions,
			IsBaseline:      sr.IsBaseline,
		}
		if err := repo.Save(ctx, route); err != nil {
			log.Fatalf("save route %s: %v", sr.RouteID, err)
		}
	}
	log.Printf("seeded %d routes", len(fleet))
}

func loadFleet(path string) ([]seedRoute, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file fleetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Routes, nil
}

func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

var defaultFleet = []seedRoute{
	{RouteID: "R001", VesselType: "Container", FuelType: "HFO", Year: 2023, GHGIntensity: 94.2, FuelConsumption: 5200, Distance: 12800, TotalEmissions: 4850, IsBaseline: true},
	{RouteID: "R002", VesselType: "BulkCarrier", FuelType: "VLSFO", Year: 2023, GHGIntensity: 92.1, FuelConsumption: 4600, Distance: 10200, TotalEmissions: 4100},
	{RouteID: "R003", VesselType: "Tanker", FuelType: "HFO", Year: 2023, GHGIntensity: 95.8, FuelConsumption: 6100, Distance: 14500, TotalEmissions: 5600},
	{RouteID: "R004", VesselType: "RoRo", FuelType: "MGO", Year: 2023, GHGIntensity: 90.3, FuelConsumption: 3800, Distance: 8500, TotalEmissions: 3200},
	{RouteID: "R005", VesselType: "Container", FuelType: "LNG", Year: 2024, GHGIntensity: 88.0, FuelConsumption: 5000, Distance: 12000, TotalEmissions: 4200},
	{RouteID: "R006", VesselType: "BulkCarrier", FuelType: "LNG", Year: 2024, GHGIntensity: 85.5, FuelConsumption: 4800, Distance: 11500, TotalEmissions: 3900},
	{RouteID: "R007", VesselType: "Tanker", FuelType: "MGO", Year: 2024, GHGIntensity: 93.5, FuelConsumption: 5100, Distance: 12500, TotalEmissions: 4700},
	{RouteID: "R008", VesselType: "Container", FuelType: "Methanol", Year: 2024, GHGIntensity: 82.4, FuelConsumption: 4400, Distance: 11200, TotalEmissions: 3500},
	{RouteID: "R009", VesselType: "RoRo", FuelType: "HFO", Year: 2024, GHGIntensity: 91.8, FuelConsumption: 4900, Distance: 11800, TotalEmissions: 4450},
	{RouteID: "R010", VesselType: "CruiseShip", FuelType: "LNG", Year: 2024, GHGIntensity: 87.2, FuelConsumption: 7200, Distance: 16000, TotalEmissions: 6100},
	{RouteID: "R011", VesselType: "Container", FuelType: "Methanol", Year: 2025, GHGIntensity: 79.6, FuelConsumption: 4300, Distance: 11000, TotalEmissions: 3200},
	{RouteID: "R012", VesselType: "BulkCarrier", FuelType: "LNG", Year: 2025, GHGIntensity: 86.1, FuelConsumption: 4700, Distance: 11200, TotalEmissions: 3850},
	{RouteID: "R013", VesselType: "Tanker", FuelType: "VLSFO", Year: 2025, GHGIntensity: 92.4, FuelConsumption: 5300, Distance: 13000, TotalEmissions: 4800},
	{RouteID: "R014", VesselType: "RoRo", FuelType: "Hydrogen", Year: 2025, GHGIntensity: 65.3, FuelConsumption: 2800, Distance: 7500, TotalEmissions: 1700},
	{RouteID: "R015", VesselType: "Container", FuelType: "LNG", Year: 2025, GHGIntensity: 90.5, FuelConsumption: 4950, Distance: 11900, TotalEmissions: 4400},
	{RouteID: "R016", VesselType: "CruiseShip", FuelType: "Methanol", Year: 2025, GHGIntensity: 80.8, FuelConsumption: 6800, Distance: 15200, TotalEmissions: 5200},
	{RouteID: "R017", VesselType: "BulkCarrier", FuelType: "Ammonia", Year: 2025, GHGIntensity: 71.2, FuelConsumption: 4100, Distance: 9800, TotalEmissions: 2700},
	{RouteID: "R018", VesselType: "Tanker", FuelType: "HFO", Year: 2025, GHGIntensity: 94.1, FuelConsumption: 5500, Distance: 13500, TotalEmissions: 5100},
	{RouteID: "R019", VesselType: "Container", FuelType: "Hydrogen", Year: 2026, GHGIntensity: 58.4, FuelConsumption: 2500, Distance: 10000, TotalEmissions: 1300},
	{RouteID: "R020", VesselType: "CruiseShip", FuelType: "LNG", Year: 2026, GHGIntensity: 84.9, FuelConsumption: 7000, Distance: 15800, TotalEmissions: 5700},
}
