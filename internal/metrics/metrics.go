package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_upstream_requests_total",
			Help: "Total number of requests sent to the activities API",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_upstream_decode_failures_total",
			Help: "Total number of activities API responses that could not be parsed",
		},
		[]string{"operation"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_upstream_request_duration_seconds",
			Help:    "Duration of activities API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StatusMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_status_messages_total",
			Help: "Total number of status messages shown to users",
		},
		[]string{"source", "kind"},
	)

	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_page_renders_total",
			Help: "Total number of activity page renders",
		},
		[]string{"result"},
	)
)
