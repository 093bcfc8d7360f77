// Package metrics defines Prometheus metrics for auction-monitor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auction_monitor"

// HTTP metrics for the watch-mode API surface.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last /readyz probe succeeded (1) or failed (0).",
	})
)

// Upstream gateway metrics.
var (
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total upstream requests by method and status code (0 when no response).",
	}, []string{"method", "status"})

	GatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of upstream requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	GatewayAuthenticationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_authentications_total",
		Help:      "Total login exchanges by result (success, failure).",
	}, []string{"result"})

	GatewayCacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_cache_invalidations_total",
		Help:      "Total number of times cached credentials were cleared after a 401.",
	})

	GatewayErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_errors_total",
		Help:      "Total normalized gateway errors by kind (auth, upstream, transport).",
	}, []string{"kind"})
)

// Monitor metrics.
var (
	MonitorRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "monitor_runs_total",
		Help:      "Total monitor runs by result (success, failure).",
	}, []string{"result"})

	MonitorRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "monitor_run_duration_seconds",
		Help:      "Duration of monitor runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	AuctionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "auctions",
		Help:      "Number of buyer auctions in the latest listing.",
	})

	AverageBids = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "average_bids",
		Help:      "Average number of bids per auction in the latest listing.",
	})

	AverageProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "average_progress",
		Help:      "Average auction progress percentage in the latest listing.",
	})

	LastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp",
		Help:      "Unix timestamp of the last successful monitor run.",
	})
)
