// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors used for monitoring the application:
// HTTP request counts and latencies, and record store query latencies and failures.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employeeapi_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employeeapi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employeeapi_db_query_duration_seconds",
			Help:    "Duration of record store queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'list_employees', 'update_employee'
		DBQueryErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employeeapi_db_query_errors_total",
			Help: "Total record store queries that returned an unexpected error.",
		}, []string{"query_type"}),
	}
}

// ObserveQuery records the duration of a store query started at start.
// Nil metrics are ignored.
func (m *Metrics) ObserveQuery(queryType string, start time.Time) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// QueryFailed counts an unexpected store error. Nil metrics are ignored.
func (m *Metrics) QueryFailed(queryType string) {
	if m == nil {
		return
	}
	m.DBQueryErrors.WithLabelValues(queryType).Inc()
}
