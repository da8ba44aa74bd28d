package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	importFilesTotal  *prometheus.CounterVec
	importRows        *prometheus.GaugeVec
	importDuration    prometheus.Histogram
	dashboardRequests *prometheus.CounterVec
	dashboardDuration prometheus.Histogram
	storeSize         prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		importFilesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_files_total",
				Help: "Total number of CSV files processed by the importer",
			},
			[]string{"status"},
		),
		importRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "import_rows_last",
				Help: "Row outcome counts of the most recent import",
			},
			[]string{"outcome"},
		),
		importDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "import_duration_milliseconds",
				Help:    "CSV import duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		dashboardRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_requests_total",
				Help: "Total number of dashboard computations by endpoint",
			},
			[]string{"endpoint"},
		),
		dashboardDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_compute_duration_milliseconds",
				Help:    "Dashboard computation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		storeSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "transaction_store_size",
				Help: "Current number of stored transactions",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "import.file.processed":
		if status := tags["status"]; status != "" {
			m.importFilesTotal.WithLabelValues(status).Inc()
		}
	case "dashboard.request":
		if endpoint := tags["endpoint"]; endpoint != "" {
			m.dashboardRequests.WithLabelValues(endpoint).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "import.file":
		m.importDuration.Observe(float64(duration.Milliseconds()))
	case "dashboard.compute":
		m.dashboardDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "import.rows":
		if outcome := tags["outcome"]; outcome != "" {
			m.importRows.WithLabelValues(outcome).Set(value)
		}
	case "store.size":
		m.storeSize.Set(value)
	}
}
