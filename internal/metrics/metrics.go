package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chagual_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chagual_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Database sessions. acquired - released must settle at zero.
	SessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chagual_db_sessions_open",
			Help: "Database sessions currently held by requests",
		},
	)

	SessionsAcquired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chagual_db_sessions_acquired_total",
			Help: "Database sessions acquired by requests",
		},
	)

	SessionsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chagual_db_sessions_released_total",
			Help: "Database sessions released by requests",
		},
	)

	ProcedureDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chagual_procedure_duration_seconds",
			Help:    "Duration of gateway operations (session scope) in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ProcedureErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chagual_procedure_errors_total",
			Help: "Gateway operations that rolled back, by error kind",
		},
		[]string{"operation", "kind"},
	)

	// Object storage
	StorageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chagual_storage_uploads_total",
			Help: "Object storage uploads by result",
		},
		[]string{"store", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chagual_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
