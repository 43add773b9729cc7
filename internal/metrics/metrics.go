// internal/metrics/metrics.go

// Package metrics exposes Prometheus instrumentation for the scoring
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scoreboard"

// Metrics holds the collectors incremented by the webhook pipeline.
type Metrics struct {
	registry *prometheus.Registry

	WebhooksReceived  *prometheus.CounterVec
	SignatureFailures prometheus.Counter
	EventsScored      prometheus.Counter
	PointsAwarded     prometheus.Counter
	NotifyFailures    prometheus.Counter
	WebhookDuration   prometheus.Histogram
}

// New creates the metric set on a dedicated registry, keeping the default Go
// collectors out of the scrape output.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		WebhooksReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhooks_received_total",
			Help:      "Webhook deliveries received, labeled by outcome.",
		}, []string{"outcome"}),
		SignatureFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signature_failures_total",
			Help:      "Webhook deliveries rejected for a bad or missing signature.",
		}),
		EventsScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_scored_total",
			Help:      "Scoring events that resulted in a ledger write.",
		}),
		PointsAwarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Total points written to the ledger.",
		}),
		NotifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_failures_total",
			Help:      "Best-effort notification sends that failed.",
		}),
		WebhookDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "webhook_duration_seconds",
			Help:      "Wall time spent handling a webhook delivery.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Registry returns the registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
