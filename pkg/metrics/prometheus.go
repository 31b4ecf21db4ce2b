package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	queriesTotal  *prometheus.CounterVec
	queryErrors   *prometheus.CounterVec
	probesTotal   *prometheus.CounterVec
	lastAccuracy  prometheus.Gauge
	queryDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		queriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zengrid_queries_total",
				Help: "Total number of warehouse query bundles executed",
			},
			[]string{"entity"},
		),
		queryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zengrid_query_errors_total",
				Help: "Total number of warehouse query failures by category",
			},
			[]string{"entity", "category"},
		),
		probesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zengrid_table_probes_total",
				Help: "Total number of diagnostic table probes by outcome",
			},
			[]string{"table", "outcome"},
		),
		lastAccuracy: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "zengrid_forecast_accuracy_pct",
				Help: "Most recently computed forecast hit-rate percentage",
			},
		),
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zengrid_query_duration_seconds",
				Help:    "Duration of warehouse operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
	}
}

// RecordQuery records a completed warehouse operation and its duration.
func (r *Recorder) RecordQuery(entity string, seconds float64) {
	r.queriesTotal.WithLabelValues(entity).Inc()
	r.queryDuration.WithLabelValues(entity).Observe(seconds)
}

// RecordQueryError records a query failure by classification category.
func (r *Recorder) RecordQueryError(entity, category string) {
	r.queryErrors.WithLabelValues(entity, category).Inc()
}

// RecordAccuracy records the latest overall accuracy percentage.
func (r *Recorder) RecordAccuracy(pct float64) {
	r.lastAccuracy.Set(pct)
}

// RecordProbe records a diagnostic probe outcome.
func (r *Recorder) RecordProbe(table string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	r.probesTotal.WithLabelValues(table, outcome).Inc()
}
