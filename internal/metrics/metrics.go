// Package metrics - Prometheus metrics for the wave planning pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlanDuration tracks full /v1/jeju_onul request duration
	PlanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_duration_seconds",
		Help:    "Duration of a full wave plan request",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	// SolverRequestsTotal counts solver collaborator calls by status code
	SolverRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_requests_total",
		Help: "Total VRP solver requests by status code",
	}, []string{"status_code"})

	// SolverRequestDuration tracks solver call latency
	SolverRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_request_duration_seconds",
		Help:    "Duration of a single VRP solver call",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	// MinimumEndTimeIterations tracks bisection iterations per binary search
	MinimumEndTimeIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "minimum_end_time_iterations",
		Help:    "Number of bisection iterations in the minimum end-time driver",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	})

	// RoutingRequestsTotal counts routing collaborator calls by status code
	RoutingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routing_requests_total",
		Help: "Total routing engine requests by status code",
	}, []string{"status_code"})

	// RoutingCacheHitRatio tracks the routing leg cache hit ratio
	RoutingCacheHitRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "routing_cache_hit_ratio",
		Help: "Hit ratio of the routing leg cache",
	})

	// RoutingCacheHitsTotal counts routing leg cache hits
	RoutingCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routing_cache_hits_total",
		Help: "Total routing leg cache hits",
	})

	// RoutingCacheMissesTotal counts routing leg cache misses
	RoutingCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routing_cache_misses_total",
		Help: "Total routing leg cache misses",
	})

	// RoutingWorkerPoolQueueSize tracks the routing enrichment worker pool queue depth
	RoutingWorkerPoolQueueSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "routing_worker_pool_queue_size",
		Help: "Current routing enrichment worker pool queue size",
	}, []string{"pool_type"})

	// SwapCountTotal counts derived swap entries by rendezvous boundary
	SwapCountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swap_count_total",
		Help: "Total derived swap manifest entries by boundary",
	}, []string{"boundary"})
)
