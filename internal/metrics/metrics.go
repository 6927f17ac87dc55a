package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AdsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "annonsplats_ads_created_total",
			Help: "Total number of ads posted",
		},
	)

	ApplicationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "annonsplats_applications_created_total",
			Help: "Total number of applications submitted",
		},
	)

	ApplicationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annonsplats_application_decisions_total",
			Help: "Application status changes by resulting status",
		},
		[]string{"status"},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annonsplats_messages_sent_total",
			Help: "Messages appended to application threads",
		},
		[]string{"kind"},
	)

	RealtimeConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "annonsplats_realtime_connections",
			Help: "Open websocket connections by feed",
		},
		[]string{"feed"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "annonsplats_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	KindUser   = "user"
	KindSystem = "system"
)
