package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"fueleu-maritime/internal/audit"
	bankingapp "fueleu-maritime/internal/banking/application"
	bankingrepo "fueleu-maritime/internal/banking/infrastructure/postgres"
	bankinghttp "fueleu-maritime/internal/banking/interfaces/http"
	complianceapp "fueleu-maritime/internal/compliance/application"
	compliancerepo "fueleu-maritime/internal/compliance/infrastructure/postgres"
	compliancehttp "fueleu-maritime/internal/compliance/interfaces/http"
	"fueleu-maritime/internal/observability/metrics"
	poolapp "fueleu-maritime/internal/pooling/application"
	poolrepo "fueleu-maritime/internal/pooling/infrastructure/postgres"
	poolhttp "fueleu-maritime/internal/pooling/interfaces/http"
	routeapp "fueleu-maritime/internal/routes/application"
	routerepo "fueleu-maritime/internal/routes/infrastructure/postgres"
	routehttp "fueleu-maritime/internal/routes/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	routeRepository := routerepo.NewRouteRepository(db)
	complianceRepository := compliancerepo.NewComplianceRepository(db)
	bankRepository := bankingrepo.NewBankRepository(db)
	poolRepository := poolrepo.NewPoolRepository(db)

	routeService, err := routeapp.NewRouteService(routeRepository)
	if err != nil {
		logger.Fatalf("route service error: %v", err)
	}
	comparisonService, err := routeapp.NewComparisonService(routeRepository)
	if err != nil {
		logger.Fatalf("comparison service error: %v", err)
	}
	complianceService, err := complianceapp.NewComplianceService(routeRepository, complianceRepository, bankRepository)
	if err != nil {
		logger.Fatalf("compliance service error: %v", err)
	}
	bankingService, err := bankingapp.NewBankingService(bankRepository, complianceRepository, bankingapp.SystemClock{})
	if err != nil {
		logger.Fatalf("banking service error: %v", err)
	}
	poolService, err := poolapp.NewPoolService(complianceRepository, poolRepository, poolapp.SystemClock{})
	if err != nil {
		logger.Fatalf("pool service error: %v", err)
	}

	routeHandler, err := routehttp.NewRouteHandler(routeService, comparisonService, auditRepo)
	if err != nil {
		logger.Fatalf("route handler error: %v", err)
	}
	complianceHandler, err := compliancehttp.NewComplianceHandler(complianceService)
	if err != nil {
		logger.Fatalf("compliance handler error: %v", err)
	}
	bankingHandler, err := bankinghttp.NewBankingHandler(bankingService, auditRepo)
	if err != nil {
		logger.Fatalf("banking handler error: %v", err)
	}
	poolHandler, err := poolhttp.NewPoolHandler(poolService, auditRepo)
	if err != nil {
		logger.Fatalf("pool handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/routes", routeHandler)
	mux.Handle("/api/v1/routes/", routeHandler)
	mux.Handle("/api/v1/compliance/", complianceHandler)
	mux.Handle("/api/v1/banking/", bankingHandler)
	mux.Handle("/api/v1/pools", poolHandler)
	mux.Handle("/api/v1/pools/", poolHandler)
	mux.Handle("/api/v1/exports/bank-entries.csv", bankinghttp.NewLedgerCSVHandler(bankingService))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
