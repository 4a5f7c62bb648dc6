package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthAttempts counts signup and signin attempts by outcome (success, rejected, error).
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_auth_attempts_total",
			Help: "Total number of signup and signin attempts by outcome",
		},
		[]string{"action", "outcome"},
	)

	// ProductMutations counts product create, update and delete calls by outcome.
	ProductMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_product_mutations_total",
			Help: "Total number of product mutations by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)

var (
	uuidPathSegment = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
	initOnce        sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthAttempts, ProductMutations)
	})
}

// NormalizePath reduces cardinality by replacing UUID path segments with {id}.
// E.g. /api/products/5f0c...e1 -> /api/products/{id}.
func NormalizePath(path string) string {
	return uuidPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// Outcome buckets an HTTP status into success, rejected (4xx) or error (5xx).
func Outcome(status int) string {
	switch {
	case status >= 500:
		return "error"
	case status >= 400:
		return "rejected"
	default:
		return "success"
	}
}

// IncAuthAttempt counts one signup or signin attempt.
func IncAuthAttempt(action string, status int) {
	AuthAttempts.WithLabelValues(action, Outcome(status)).Inc()
}

// IncProductMutation counts one product create, update or delete.
func IncProductMutation(action string, status int) {
	ProductMutations.WithLabelValues(action, Outcome(status)).Inc()
}
