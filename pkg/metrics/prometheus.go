// Package metrics provides Prometheus metrics for the matchday schedule service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the matchday service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Schedule lifecycle metrics.
	scheduleLoads        prometheus.Counter
	scheduleLoadFailures *prometheus.CounterVec
	loadDuration         prometheus.Histogram

	// Dataset gauges, refreshed after every successful load.
	gamesLoaded     prometheus.Gauge
	teamsLoaded     prometheus.Gauge
	divisionsLoaded prometheus.Gauge
	lastGameCount   prometheus.Gauge

	// Engine metrics.
	filterRequests prometheus.Counter
	emptyResults   prometheus.Counter
	renderDuration prometheus.Histogram

	// HTTP performance metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Process metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchday",
		subsystem:        "schedule",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
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

	m.scheduleLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loads_total",
		Help:      "Total number of successful schedule load attempts",
	})

	m.scheduleLoadFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_failures_total",
		Help:      "Total number of failed schedule load attempts by failure kind",
	}, []string{"kind"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_ms",
		Help:      "Schedule load attempt duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.gamesLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_loaded",
		Help:      "Number of games in the current schedule snapshot",
	})

	m.teamsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_loaded",
		Help:      "Number of distinct teams in the current schedule snapshot",
	})

	m.divisionsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "divisions_loaded",
		Help:      "Number of distinct divisions in the current schedule snapshot",
	})

	m.lastGameCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_games",
		Help:      "Number of games flagged as last-of-day on their field",
	})

	m.filterRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filter_requests_total",
		Help:      "Total number of filter evaluations",
	})

	m.emptyResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_results_total",
		Help:      "Total number of filter evaluations that matched no games",
	})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_duration_ms",
		Help:      "Schedule render duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Total HTTP error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordScheduleLoad records a successful schedule load attempt.
func RecordScheduleLoad() {
	if globalManager != nil && globalManager.enabled {
		globalManager.scheduleLoads.Inc()
	}
}

// RecordScheduleLoadFailure records a failed load attempt with its failure kind
// (network, parse, format).
func RecordScheduleLoadFailure(kind string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.scheduleLoadFailures.WithLabelValues(kind).Inc()
	}
}

// RecordLoadDuration records how long a load attempt took in milliseconds.
func RecordLoadDuration(latencyMs float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.loadDuration.Observe(latencyMs)
	}
}

// UpdateGamesLoaded updates the games gauge.
func UpdateGamesLoaded(count int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.gamesLoaded.Set(float64(count))
	}
}

// UpdateTeamsLoaded updates the teams gauge.
func UpdateTeamsLoaded(count int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.teamsLoaded.Set(float64(count))
	}
}

// UpdateDivisionsLoaded updates the divisions gauge.
func UpdateDivisionsLoaded(count int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.divisionsLoaded.Set(float64(count))
	}
}

// UpdateLastGameCount updates the last-game gauge.
func UpdateLastGameCount(count int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.lastGameCount.Set(float64(count))
	}
}

// RecordFilterRequest records a filter evaluation.
func RecordFilterRequest() {
	if globalManager != nil && globalManager.enabled {
		globalManager.filterRequests.Inc()
	}
}

// RecordEmptyResult records a filter evaluation that matched nothing.
func RecordEmptyResult() {
	if globalManager != nil && globalManager.enabled {
		globalManager.emptyResults.Inc()
	}
}

// RecordRenderDuration records a schedule render duration in milliseconds.
func RecordRenderDuration(latencyMs float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.renderDuration.Observe(latencyMs)
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByEndpoint records an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage updates the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// GetRegistry returns the custom registry used by the global manager,
// for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
