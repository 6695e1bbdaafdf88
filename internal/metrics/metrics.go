// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlane_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentorlane_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Identity metrics
	IdentityResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlane_identity_resolutions_total",
			Help: "Bearer credential resolutions by trust tier",
		},
		[]string{"tier"}, // "verified", "unverified" or "unresolved"
	)

	// Inbox metrics
	InboxAggregations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorlane_inbox_aggregations_total",
			Help: "Total conversation list aggregations",
		},
	)

	InboxDegradedReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlane_inbox_degraded_reads_total",
			Help: "Conversation list reads that fell back to an empty or unenriched result",
		},
		[]string{"stage"}, // "messages" or "profiles"
	)

	InboxConversations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mentorlane_inbox_conversations",
			Help:    "Conversations returned per inbox read",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	// Business metrics
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlane_messages_sent_total",
			Help: "Total direct messages sent",
		},
		[]string{"message_type"},
	)

	KarmaAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlane_karma_awarded_total",
			Help: "Total karma points awarded",
		},
		[]string{"action"},
	)

	PolicyDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlane_policy_decisions_total",
			Help: "Access policy decisions",
		},
		[]string{"action", "decision"},
	)
)
