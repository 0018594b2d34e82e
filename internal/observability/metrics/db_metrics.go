package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "bank_entries_count",
			Help: "Rows in the banking ledger",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM bank_entries")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "banked_available_gco2e",
			Help: "Available banked surplus across all ships in gCO2e",
		},
		func() float64 {
			return querySum(db, logger, "SELECT COALESCE(SUM(amount_gco2e), 0) FROM bank_entries")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "pools_count",
			Help: "Pools created",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM pools")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}

func querySum(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var sum float64
	if err := db.QueryRow(query).Scan(&sum); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	return sum
}
