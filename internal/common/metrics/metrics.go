// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_handled_total",
			Help: "Total number of match requests handled, by reply status",
		},
		[]string{"status"},
	)

	MatchRequestsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_requests_discarded_total",
			Help: "Total number of malformed envelopes discarded without a reply",
		},
	)

	MatchRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matching_request_duration_seconds",
			Help: "Duration of match request handling in seconds",
		},
	)

	RepliesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_replies_published_total",
			Help: "Total number of match replies published, by reply status",
		},
		[]string{"status"},
	)

	ReplyPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_reply_publish_failures_total",
			Help: "Total number of replies that could not be published; each one leaves a caller unresolved",
		},
	)
)
