// Package metrics provides Prometheus instrumentation: HTTP traffic, live
// push connections and the engagement, messaging and moderation counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route and status
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zevabayan_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency in seconds
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zevabayan_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"method", "route"})

	// PushConnections tracks the current number of websocket connections
	PushConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zevabayan_push_connections",
		Help: "Current number of live websocket connections",
	})

	// MessagesTotal counts sent messages, labeled by kind: "direct" or "club"
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zevabayan_messages_total",
		Help: "Total number of messages sent",
	}, []string{"kind"})

	// VotesTotal counts vote outcomes: "added", "switched" or "removed"
	VotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zevabayan_votes_total",
		Help: "Total number of applied votes",
	}, []string{"outcome"})

	// ReactionsTotal counts reactions by type
	ReactionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zevabayan_reactions_total",
		Help: "Total number of reactions",
	}, []string{"type"})

	// ReportsTotal counts filed reports
	ReportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zevabayan_reports_total",
		Help: "Total number of abuse reports filed",
	})

	// ModerationTransitionsTotal counts escalations by target state
	ModerationTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zevabayan_moderation_transitions_total",
		Help: "Total number of moderation state transitions",
	}, []string{"state"})

	// NotificationsTotal counts persisted notifications
	NotificationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zevabayan_notifications_total",
		Help: "Total number of notifications created",
	})

	// RateLimitedTotal counts requests rejected by the rate limiter, by rule key
	RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zevabayan_rate_limited_total",
		Help: "Total number of rate limited requests",
	}, []string{"rule"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		PushConnections,
		MessagesTotal,
		VotesTotal,
		ReactionsTotal,
		ReportsTotal,
		ModerationTransitionsTotal,
		NotificationsTotal,
		RateLimitedTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
