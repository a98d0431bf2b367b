package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Relay outcomes used as the outcome label of relay metrics.
const (
	RelayOutcomeSuccess  = "success"
	RelayOutcomeRejected = "rejected"
	RelayOutcomeFailed   = "failed"
)

// MetricsService encapsulates Prometheus instrumentation for the portal.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec
	relayTotal      *prometheus.CounterVec
	relayDuration   *prometheus.HistogramVec
	relayBytes      *prometheus.CounterVec
	recordFailures  prometheus.Counter
	unrecorded      *prometheus.CounterVec

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers the HTTP, cache, database and relay collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	relayTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_uploads_total",
		Help: "Upload relays by category and outcome",
	}, []string{"category", "outcome"})

	relayDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_transfer_duration_seconds",
		Help:    "Time from session open to session close for successful relays",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"category"})

	relayBytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_bytes_total",
		Help: "Bytes delivered to the remote store",
	}, []string{"category"})

	recordFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_record_failures_total",
		Help: "Successful relays whose submission record could not be written",
	})

	unrecorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_unrecorded_uploads_total",
		Help: "Successful relays without a submitting user, so no record was written",
	}, []string{"category"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		dbQueryDuration, relayTotal, relayDuration, relayBytes, recordFailures, unrecorded, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		dbQueryDuration: dbQueryDuration,
		relayTotal:      relayTotal,
		relayDuration:   relayDuration,
		relayBytes:      relayBytes,
		recordFailures:  recordFailures,
		unrecorded:      unrecorded,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// ObserveRelay records the outcome of one upload relay. Duration and size are
// only observed for successful relays.
func (m *MetricsService) ObserveRelay(category, outcome string, size int, duration time.Duration) {
	if m == nil {
		return
	}
	m.relayTotal.WithLabelValues(category, outcome).Inc()
	if outcome == RelayOutcomeSuccess {
		m.relayDuration.WithLabelValues(category).Observe(duration.Seconds())
		m.relayBytes.WithLabelValues(category).Add(float64(size))
	}
}

// RecordSubmissionFailure counts relays whose record was lost.
func (m *MetricsService) RecordSubmissionFailure() {
	if m == nil {
		return
	}
	m.recordFailures.Inc()
}

// RecordUnrecordedUpload counts relays delivered without a submitting user.
func (m *MetricsService) RecordUnrecordedUpload(category string) {
	if m == nil {
		return
	}
	m.unrecorded.WithLabelValues(category).Inc()
}
