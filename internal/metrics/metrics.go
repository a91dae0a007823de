// Package metrics provides Prometheus metrics collection for the fulfillment service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ReservationsTotal tracks executed reservations by outcome.
	// Outcomes: full, partial, invalid_request, target_not_found, conflict, error.
	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_reservations_total",
			Help: "Total number of stock reservation requests by outcome",
		},
		[]string{"outcome"},
	)

	// ReservationDuration tracks end-to-end reservation duration.
	ReservationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_reservation_duration_seconds",
			Help:    "Stock reservation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// ReservedUnitsTotal counts units actually consumed from surplus.
	ReservedUnitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_reserved_units_total",
			Help: "Total number of surplus units consumed by reservations",
		},
	)

	// CreditsTotal tracks surplus credit operations by outcome.
	CreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_credits_total",
			Help: "Total number of surplus credit operations by outcome",
		},
		[]string{"outcome"},
	)

	// StockAvailable tracks the live surplus per item code.
	StockAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stock_available_units",
			Help: "Available surplus units per item code",
		},
		[]string{"item_code"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordReservation records metrics for a reservation attempt.
func RecordReservation(duration time.Duration, outcome string, unitsFulfilled int) {
	ReservationDuration.Observe(duration.Seconds())
	ReservationsTotal.WithLabelValues(outcome).Inc()
	if unitsFulfilled > 0 {
		ReservedUnitsTotal.Add(float64(unitsFulfilled))
	}
}

// RecordCredit records metrics for a surplus credit operation.
func RecordCredit(outcome string) {
	CreditsTotal.WithLabelValues(outcome).Inc()
}

// SetStockAvailable updates the live surplus gauge for an item code.
func SetStockAvailable(itemCode string, available int) {
	StockAvailable.WithLabelValues(itemCode).Set(float64(available))
}
