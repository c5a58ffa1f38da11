package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts every HTTP request handled.
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studytrack_requests_total",
		Help: "The total number of requests",
	})

	// ResponsesTotal counts responses by status code.
	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studytrack_responses_total",
		Help: "The total number of responses by status code",
	}, []string{"status"})

	// RequestDuration observes total request handling time.
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studytrack_request_duration_seconds",
		Help:    "The request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RequestDurationByPath observes handling time per method and route.
	RequestDurationByPath = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studytrack_request_duration_by_path_seconds",
		Help:    "The request duration in seconds by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// LoginAttemptsTotal counts login attempts by outcome.
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studytrack_login_attempts_total",
		Help: "The total number of login attempts",
	}, []string{"status"})

	// TokenRefreshTotal counts refresh rotations by outcome.
	TokenRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studytrack_token_refresh_total",
		Help: "The total number of token refreshes",
	}, []string{"status"})
)
