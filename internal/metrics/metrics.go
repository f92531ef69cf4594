// README: Prometheus counters for the booking flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropgo_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	CapacityRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropgo_capacity_rejections_total",
		Help: "Total number of bookings rejected for insufficient store capacity.",
	})

	QuotesComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropgo_quotes_computed_total",
		Help: "Total number of booking price quotes computed.",
	})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dropgo_order_transitions_total",
		Help: "Total number of order status transitions, by target status.",
	},
		[]string{"to"},
	)

	UpstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dropgo_upstream_errors_total",
		Help: "Total number of third-party service failures, by service.",
	},
		[]string{"service"},
	)
)
