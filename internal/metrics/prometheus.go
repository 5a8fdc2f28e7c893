// Package metrics provides Prometheus metrics for the magpie lookup
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heliobs/magpie/pkg/warning"
)

// Manager manages all Prometheus metrics for the magpie service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Lookup metrics, the core business of the service
	lookups        prometheus.Counter
	lookupErrors   prometheus.Counter
	lookupDuration prometheus.Histogram
	bandsMerged    prometheus.Histogram

	// Data quality metrics
	warnings *prometheus.CounterVec

	// Archive client metrics
	archiveRequests *prometheus.CounterVec
	archiveDuration *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec

	// HTTP server metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "magpie",
		subsystem:        "photometry",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.lookups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookups_total",
		Help:      "Total number of completed target lookups",
	})

	m.lookupErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_errors_total",
		Help:      "Total number of failed target lookups",
	})

	m.lookupDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_duration_seconds",
		Help:      "End-to-end lookup duration in seconds",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	m.bandsMerged = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bands_merged",
		Help:      "Number of photometric bands claimed per lookup",
		Buckets:   prometheus.LinearBuckets(0, 4, 7),
	})

	m.warnings = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "warnings_total",
			Help:      "Total number of resolution warnings by category and catalog",
		},
		[]string{"category", "catalog"},
	)

	m.archiveRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "archive_requests_total",
			Help:      "Total number of archive requests by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	m.archiveDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "archive_request_duration_seconds",
			Help:      "Archive request duration in seconds by service",
			Buckets:   m.histogramBuckets,
		},
		[]string{"service"},
	)

	m.cacheHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_hits_total",
			Help:      "Total number of response cache hits by service",
		},
		[]string{"service"},
	)

	m.cacheMisses = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_misses_total",
			Help:      "Total number of response cache misses by service",
		},
		[]string{"service"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordLookup records a completed lookup with its duration and the
// number of bands it claimed.
func RecordLookup(seconds float64, bands int) {
	globalManager.lookups.Inc()
	globalManager.lookupDuration.Observe(seconds)
	globalManager.bandsMerged.Observe(float64(bands))
}

// RecordLookupError increments the failed lookup counter.
func RecordLookupError() {
	globalManager.lookupErrors.Inc()
}

// RecordWarning counts a resolution warning.
func RecordWarning(category, catalog string) {
	globalManager.warnings.WithLabelValues(category, catalog).Inc()
}

// RecordArchiveRequest records one archive round trip.
func RecordArchiveRequest(service string, seconds float64, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	globalManager.archiveRequests.WithLabelValues(service, outcome).Inc()
	globalManager.archiveDuration.WithLabelValues(service).Observe(seconds)
}

// RecordCacheHit counts a response cache hit.
func RecordCacheHit(service string) {
	globalManager.cacheHits.WithLabelValues(service).Inc()
}

// RecordCacheMiss counts a response cache miss.
func RecordCacheMiss(service string) {
	globalManager.cacheMisses.WithLabelValues(service).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WarningReporter bridges resolution warnings into Prometheus counters.
// It satisfies warning.Reporter and can be teed next to any other
// reporter.
type WarningReporter struct{}

// Report counts the warning.
func (WarningReporter) Report(w warning.Warning) {
	RecordWarning(string(w.Category), w.Catalog)
}
