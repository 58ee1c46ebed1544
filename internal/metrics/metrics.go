// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdash_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartdash_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PaymentDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdash_payment_decisions_total",
			Help: "Payments approved or rejected by administrators",
		},
		[]string{"decision"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdash_cache_lookups_total",
			Help: "Cache lookups by entity and result",
		},
		[]string{"entity", "result"},
	)

	RevokedSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smartdash_revoked_sessions_total",
			Help: "Sessions revoked because the account is not a super admin",
		},
	)
)
