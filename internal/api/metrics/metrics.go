// Package metrics defines and registers all custom Prometheus metrics for the
// lead broker API. It is the single source of truth for metric names, labels,
// and help strings. Everything registers against the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leadbroker"

// ClaimsTotal counts credit-claim attempts by outcome.
// Labels:
//   - task_id: the registry id being claimed (e.g. "bio")
//   - result: "awarded", "already_claimed", or "not_complete"
var ClaimsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_total",
		Help:      "Total number of credit-claim attempts, by task and outcome.",
	},
	[]string{"task_id", "result"},
)

// UpstreamRequestDuration measures the latency of every call to the external
// store, including transport failures.
// Labels:
//   - component: "rest" (PostgREST), "auth" (GoTrue), or "rpc"
//   - outcome: "ok", "client_error", "server_error", or "transport_error"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the external auth/data store.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"component", "outcome"},
)
