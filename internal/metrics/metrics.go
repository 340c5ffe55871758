package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chit_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chit_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RepaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chit_repayments_total",
			Help: "Processed repayments by payment method and outcome",
		},
		[]string{"method", "outcome"},
	)

	RepaymentAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chit_repayment_amount_total",
			Help: "Sum of successfully collected repayment amounts",
		},
	)
)
