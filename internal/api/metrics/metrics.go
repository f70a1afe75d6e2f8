// Package metrics defines and registers all custom Prometheus metrics for the
// portfolio backend. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// SubmissionsTotal counts intake pipeline decisions.
// Labels:
//   - kind: "contact" or "testimonial"
//   - outcome: "accepted", "spam", "duplicate", or "invalid"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of form submissions, by kind and intake outcome.",
	},
	[]string{"kind", "outcome"},
)

// ModerationUpdatesTotal counts admin moderation state changes.
// Label:
//   - kind: "contact" or "testimonial"
var ModerationUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_updates_total",
		Help:      "Total number of admin moderation updates, by submission kind.",
	},
	[]string{"kind"},
)

// ProjectMutationsTotal counts admin project CRUD operations.
// Label:
//   - action: "create", "update", or "delete"
var ProjectMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_mutations_total",
		Help:      "Total number of admin project mutations, by action.",
	},
	[]string{"action"},
)

// RateLimitedTotal counts public submissions rejected by the Redis limiter
// before reaching the intake pipeline.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of submissions rejected by the rate limiter.",
	},
)

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
