package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	EvaluationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpipe_evaluations_total",
			Help: "Total content evaluations processed",
		},
		[]string{"surface", "outcome"},
	)

	BlocksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpipe_blocks_total",
			Help: "Blocked verdicts by layer and category",
		},
		[]string{"layer", "category"},
	)

	ClassifierFailuresTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpipe_classifier_failures_total",
			Help: "External classifier failures resolved by failing open",
		},
		[]string{"provider", "kind"},
	)

	ClassifierLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustpipe_classifier_latency_ms",
			Help:    "External classifier call latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"provider", "input"},
	)

	SuspensionsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "trustpipe_suspensions_total",
			Help: "Trust profiles transitioned to suspended",
		},
	)

	NotificationDispatchTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpipe_notification_dispatch_total",
			Help: "Guardian notification delivery attempts by result",
		},
		[]string{"result"},
	)

	AsyncVerifyFailuresTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "trustpipe_async_verify_failures_total",
			Help: "Background chat verifications that errored and were swallowed",
		},
	)

	HTTPRequestDuration = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustpipe_http_request_duration_ms",
			Help:    "HTTP request duration in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

func Registry() *prometheus.Registry {
	return registry
}
