// Package metrics declares the Prometheus collectors of the service. They are
// registered with the default registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	BatchesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_batches_issued_total",
			Help: "Batches issued to couriers",
		},
	)

	OrdersAssigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_orders_assigned_total",
			Help: "Orders claimed by newly issued batches",
		},
	)

	OrdersCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_orders_completed_total",
			Help: "Orders marked as delivered",
		},
	)

	UnclaimedOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_unclaimed_orders",
			Help: "Open orders waiting for a courier",
		},
	)

	InFlightOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_in_flight_orders",
			Help: "Orders claimed by a batch and not delivered yet",
		},
	)
)
