// Package metrics provides Prometheus instrumentation for the Palate
// recommendation pipeline. Collectors are registered on the default
// registry and exposed by the HTTP API's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts recommendation requests by resulting method.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palate_requests_total",
			Help: "Total number of recommendation requests by result method",
		},
		[]string{"method"},
	)

	// FallbacksTotal counts pipeline failures recovered via the fallback list.
	FallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palate_fallbacks_total",
			Help: "Total number of requests degraded to the fallback list",
		},
	)

	// InteractionsTotal counts applied profile interactions.
	InteractionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palate_interactions_total",
			Help: "Total number of profile interactions applied",
		},
	)

	// RequestDuration observes end-to-end recommendation latency.
	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "palate_request_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PersistErrors counts non-fatal model persistence failures.
	PersistErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palate_persist_errors_total",
			Help: "Total number of non-fatal model persistence failures",
		},
	)
)
