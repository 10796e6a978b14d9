package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors exposed by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	DBPoolOpen  prometheus.Gauge
	DBPoolInUse prometheus.Gauge
	DBPoolIdle  prometheus.Gauge

	SlotConflictsTotal prometheus.Counter
	TxRetriesTotal     prometheus.Counter
}

// ObserveTxRetry counts one serializable transaction retry.
func (m *Metrics) ObserveTxRetry() { m.TxRetriesTotal.Inc() }

// ObserveSlotConflict counts one booking attempt rejected by the conflict guard.
func (m *Metrics) ObserveSlotConflict() { m.SlotConflictsTotal.Inc() }

// New registers and returns the service collectors on the default registry.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total database queries by operation kind.",
			ConstLabels: labels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation kind.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool.",
			ConstLabels: labels,
		}),

		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: labels,
		}),

		DBPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the database pool.",
			ConstLabels: labels,
		}),

		SlotConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Booking attempts rejected because the slot was already taken.",
			ConstLabels: labels,
		}),

		TxRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_tx_retries_total",
			Help:        "Serializable transaction retries after serialization failures.",
			ConstLabels: labels,
		}),
	}
}
