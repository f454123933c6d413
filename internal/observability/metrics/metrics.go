package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "sales_"

	resultSuccess = "success"
	resultInvalid = "invalid"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	insertTotal   *prometheus.CounterVec
	insertLatency *prometheus.HistogramVec

	viewTotal   *prometheus.CounterVec
	viewLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	recordCount prometheus.Gauge
)

// Init registers the service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		insertTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "record_inserts_total",
				Help: "Total record insert attempts by result",
			},
			[]string{"result"},
		)
		insertLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "record_insert_latency_seconds",
				Help:    "Record insert latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		viewTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "view_computations_total",
				Help: "Total view computations by view",
			},
			[]string{"view"},
		)
		viewLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "view_latency_seconds",
				Help:    "View computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"view"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		recordCount = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "records",
				Help: "Current number of records in the store",
			},
		)

		prometheus.MustRegister(
			insertTotal,
			insertLatency,
			viewTotal,
			viewLatency,
			exportTotal,
			exportLatency,
			recordCount,
		)
	})
}

// InsertResult maps an insert outcome to a metric label.
func InsertResult(err error, invalid bool) string {
	switch {
	case err == nil:
		return resultSuccess
	case invalid:
		return resultInvalid
	default:
		return resultError
	}
}

// ObserveInsert records insert latency and result.
func ObserveInsert(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if insertTotal != nil {
		insertTotal.WithLabelValues(result).Inc()
	}
	if insertLatency != nil {
		insertLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveView records view computation latency.
func ObserveView(view string, duration time.Duration) {
	if view == "" {
		view = "unknown"
	}
	if viewTotal != nil {
		viewTotal.WithLabelValues(view).Inc()
	}
	if viewLatency != nil {
		viewLatency.WithLabelValues(view).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// SetRecordCount updates the store size gauge.
func SetRecordCount(count int) {
	if recordCount != nil {
		recordCount.Set(float64(count))
	}
}
