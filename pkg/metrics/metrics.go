package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_orders_created_total",
			Help: "Total number of orders created at checkout",
		},
	)

	checkoutConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_checkout_conflicts_total",
			Help: "Total number of checkouts rejected because a product was not available",
		},
	)

	orderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_order_transitions_total",
			Help: "Total number of order status changes by target status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ordersCreatedTotal)
	prometheus.MustRegister(checkoutConflictsTotal)
	prometheus.MustRegister(orderTransitionsTotal)
}

func RecordOrdersCreated(n int) {
	ordersCreatedTotal.Add(float64(n))
}

func RecordCheckoutConflict() {
	checkoutConflictsTotal.Inc()
}

func RecordOrderTransition(status string) {
	orderTransitionsTotal.WithLabelValues(status).Inc()
}
