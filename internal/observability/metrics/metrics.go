package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fueleu_"

	resultSuccess = "success"
	resultError   = "error"
)

// Result labels for operation outcomes.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)

var (
	registerOnce sync.Once

	computeCBTotal   *prometheus.CounterVec
	computeCBLatency *prometheus.HistogramVec

	bankTotal    *prometheus.CounterVec
	bankLatency  *prometheus.HistogramVec
	applyTotal   *prometheus.CounterVec
	applyLatency *prometheus.HistogramVec

	poolCreateTotal   *prometheus.CounterVec
	poolCreateLatency *prometheus.HistogramVec

	comparisonTotal   *prometheus.CounterVec
	comparisonLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		computeCBTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "compute_cb_total",
				Help: "Total compliance balance computations by result",
			},
			[]string{"result"},
		)
		computeCBLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "compute_cb_latency_seconds",
				Help:    "Compliance balance computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		bankTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bank_surplus_total",
				Help: "Total surplus banking operations by result",
			},
			[]string{"result"},
		)
		bankLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "bank_surplus_latency_seconds",
				Help:    "Surplus banking latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		applyTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "apply_banked_total",
				Help: "Total banked surplus applications by result",
			},
			[]string{"result"},
		)
		applyLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "apply_banked_latency_seconds",
				Help:    "Banked surplus application latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		poolCreateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pool_create_total",
				Help: "Total pool creations by result",
			},
			[]string{"result"},
		)
		poolCreateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "pool_create_latency_seconds",
				Help:    "Pool creation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		comparisonTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "comparison_total",
				Help: "Total baseline comparisons by result",
			},
			[]string{"result"},
		)
		comparisonLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "comparison_latency_seconds",
				Help:    "Baseline comparison latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total compliance report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Compliance report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			computeCBTotal, computeCBLatency,
			bankTotal, bankLatency,
			applyTotal, applyLatency,
			poolCreateTotal, poolCreateLatency,
			comparisonTotal, comparisonLatency,
			reportExportTotal, reportExportLatency,
		)

		registerDBMetrics(db, logger)
	})
}

// ObserveComputeCB records one compliance computation.
func ObserveComputeCB(result string, elapsed time.Duration) {
	if computeCBTotal == nil {
		return
	}
	computeCBTotal.WithLabelValues(result).Inc()
	computeCBLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObserveBankSurplus records one banking operation.
func ObserveBankSurplus(result string, elapsed time.Duration) {
	if bankTotal == nil {
		return
	}
	bankTotal.WithLabelValues(result).Inc()
	bankLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObserveApplyBanked records one apply operation.
func ObserveApplyBanked(result string, elapsed time.Duration) {
	if applyTotal == nil {
		return
	}
	applyTotal.WithLabelValues(result).Inc()
	applyLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObservePoolCreate records one pool creation.
func ObservePoolCreate(result string, elapsed time.Duration) {
	if poolCreateTotal == nil {
		return
	}
	poolCreateTotal.WithLabelValues(result).Inc()
	poolCreateLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObserveComparison records one baseline comparison.
func ObserveComparison(result string, elapsed time.Duration) {
	if comparisonTotal == nil {
		return
	}
	comparisonTotal.WithLabelValues(result).Inc()
	comparisonLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObserveReportExport records one report export by format.
func ObserveReportExport(format, result string, elapsed time.Duration) {
	if reportExportTotal == nil {
		return
	}
	reportExportTotal.WithLabelValues(format, result).Inc()
	reportExportLatency.WithLabelValues(format, result).Observe(elapsed.Seconds())
}
