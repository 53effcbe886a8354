package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "db_error" etc.
	)

	// Order counters
	OrderPlacedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	OrderRejectedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of rejected order submissions",
		},
		[]string{"reason"}, // "empty_cart", "restaurant_not_found", "item_unavailable", etc.
	)

	// Notification channel linking counter
	NotifyLinkCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_channel_links_total",
			Help: "Total number of notification channel link attempts",
		},
		[]string{"subject", "outcome"}, // subject: "user"/"restaurant", outcome: "linked"/"failed"
	)
)

// Histogram metrics
var (
	OrderTotalHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_total_amount",
			Help:    "Distribution of order totals",
			Buckets: []float64{5, 10, 20, 40, 80, 160, 320},
		},
	)

	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "transaction"
	)
)

func init() {
	prometheus.MustRegister(
		LoginCounter,
		RegisterCounter,
		AuthErrorCounter,
		OrderPlacedCounter,
		OrderRejectedCounter,
		NotifyLinkCounter,
		OrderTotalHistogram,
		DBOperationDuration,
	)
}

// RecordAuthError increments the auth error counter for the given error type
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// TrackDBOperation returns a function that records the duration of a database
// operation when invoked. Intended usage:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
