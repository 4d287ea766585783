package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/M5Csoftware/m5c-portal-api/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Signup counters
	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_signup_total",
			Help: "Total number of portal signups",
		},
	)

	// Verification email counters
	VerificationIssuedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_verification_issued_total",
			Help: "Total number of verification tokens issued",
		},
	)

	VerificationConfirmedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_verification_confirmed_total",
			Help: "Total number of successful email verifications",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "user_not_registered", "invalid_token", "db_error" etc.
	)

	// Shipment operation counter
	ShipmentOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_shipment_operations_total",
			Help: "Total number of shipment operations",
		},
		[]string{"operation"}, // operation can be "create", "list", "get"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_active_sessions",
			Help: "Number of session tokens issued and not yet expired",
		},
	)
)

// InitMetrics registers all collectors with the default registry
func InitMetrics(cfg *config.Config) {
	prometheus.MustRegister(
		LoginCounter,
		SignupCounter,
		VerificationIssuedCounter,
		VerificationConfirmedCounter,
		HTTPRequestCounter,
		AuthErrorCounter,
		ShipmentOperationCounter,
		RequestDuration,
		DBOperationDuration,
		ActiveSessionsGauge,
	)
}

// GetPrometheusHandler returns the HTTP handler exposing the metrics endpoint
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation returns a function that records the duration of a database
// operation when called, intended to be used with defer
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// IncreaseActiveSessions increments the active sessions gauge
func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

// DecreaseActiveSessions decrements the active sessions gauge
func DecreaseActiveSessions() {
	ActiveSessionsGauge.Dec()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordShipmentOperation records a shipment operation
func RecordShipmentOperation(operation string) {
	ShipmentOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}
