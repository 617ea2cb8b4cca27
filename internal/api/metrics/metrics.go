// Package metrics defines and registers all custom Prometheus metrics for
// the console gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at init
// time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Auth flow metrics ─────────────────────────────────────────────────────────

// OTPRequestsTotal counts first-step sign-in submissions that reached the
// upstream API.
// Label:
//   - result: "sent" or "error"
var OTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_requests_total",
		Help:      "Total number of OTP requests forwarded upstream, by result.",
	},
	[]string{"result"},
)

// OTPVerificationsTotal counts second-step verifications.
// Label:
//   - result: "success" or "failure"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks sessions created minus sessions explicitly logged
// out. Denied guard checks do not touch it: a denial never clears a session.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Sessions currently held in the session store.",
	},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts role-guard evaluations.
// Label:
//   - decision: "admit" or "deny"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of role guard evaluations, by decision.",
	},
	[]string{"decision"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures round-trip latency of calls to the
// orphanage API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "send_otp", "children")
//   - status: HTTP status class ("2xx", "4xx", "5xx", "error")
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream orphanage API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)
