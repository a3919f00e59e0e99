// Package metrics exposes the Prometheus collectors used across the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gachastore_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gachastore_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gachastore_submissions_total",
		Help: "User submissions by type.",
	}, []string{"type"})

	SubmissionReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gachastore_submission_reviews_total",
		Help: "Submission review decisions.",
	}, []string{"action"})

	SpamGuardRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gachastore_spam_guard_rejections_total",
		Help: "Submissions rejected by the rolling-window spam guard.",
	})

	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gachastore_side_effect_failures_total",
		Help: "Best-effort side effects (audit, mail) that failed.",
	}, []string{"kind"})
)
