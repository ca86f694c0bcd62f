package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_brotar_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// BackendRequests counts calls made to the registry backend
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_brotar_backend_requests_total",
			Help: "Number of requests sent to the registry backend",
		},
		[]string{"resource", "method", "status"},
	)

	// BackendDuration tracks registry backend latency
	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "app_brotar_backend_request_duration_seconds",
			Help:    "Duration of registry backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	// SessionExpired counts 401 responses that opened the session-expired signal
	SessionExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "app_brotar_session_expired_total",
			Help: "Number of times the session-expired signal was opened",
		},
	)

	// GuardRedirects counts route guard redirects by target
	GuardRedirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_brotar_guard_redirects_total",
			Help: "Number of redirects issued by the route guard",
		},
		[]string{"target"},
	)

	// ReconcileOperations counts child reconciliation calls
	ReconcileOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_brotar_reconcile_operations_total",
			Help: "Number of child create/update/delete calls issued on parent submit",
		},
		[]string{"child", "operation", "status"},
	)

	// AuditEvents counts audit entries by outcome
	AuditEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_brotar_audit_events_total",
			Help: "Number of audit entries by outcome",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_brotar_active_connections",
			Help: "Number of active connections",
		},
	)
)
