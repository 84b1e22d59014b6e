// Package metrics provides Prometheus metrics for the FUTVIS dashboard.
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

// Manager manages all Prometheus metrics for the FUTVIS service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Panel Metrics - what the dashboard user sees
	panelRenders        *prometheus.CounterVec
	panelRenderDuration *prometheus.HistogramVec

	// Computation Metrics - aggregator, binner and hull
	computeDuration *prometheus.HistogramVec

	// Memo Cache Metrics
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	cacheEntries   prometheus.Gauge

	// Dataset Metrics
	datasetSamples      prometheus.Gauge
	datasetMaxMinute    prometheus.Gauge
	datasetLoads        *prometheus.CounterVec
	datasetLoadDuration prometheus.Histogram
	datasetLastLoadUnix prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance. Replaced by Configure at startup.
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
		namespace:        "futvis",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often callers should refresh sampled gauges.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	// Panel Metrics
	m.panelRenders = auto.NewCounterVec(
		m.counterOpts("panel_renders_total", "Total number of panel renders by panel and outcome"),
		[]string{"panel", "outcome"},
	)
	m.panelRenderDuration = auto.NewHistogramVec(
		m.histogramOpts("panel_render_duration_milliseconds", "Panel render duration in milliseconds", m.histogramBuckets),
		[]string{"panel"},
	)

	// Computation Metrics
	m.computeDuration = auto.NewHistogramVec(
		m.histogramOpts("compute_duration_milliseconds", "Duration of core computations in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)

	// Memo Cache Metrics
	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Total number of memo cache hits"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Total number of memo cache misses"))
	m.cacheEvictions = auto.NewCounter(m.counterOpts("cache_evictions_total", "Total number of memo cache evictions"))
	m.cacheEntries = auto.NewGauge(m.gaugeOpts("cache_entries", "Current number of memo cache entries"))

	// Dataset Metrics
	m.datasetSamples = auto.NewGauge(m.gaugeOpts("dataset_samples", "Number of position samples in the loaded dataset"))
	m.datasetMaxMinute = auto.NewGauge(m.gaugeOpts("dataset_max_minute", "Last match minute covered by the loaded dataset"))
	m.datasetLoads = auto.NewCounterVec(
		m.counterOpts("dataset_loads_total", "Total number of dataset loads by outcome"),
		[]string{"outcome"},
	)
	m.datasetLoadDuration = auto.NewHistogram(
		m.histogramOpts("dataset_load_duration_milliseconds", "Dataset load duration in milliseconds", m.histogramBuckets),
	)
	m.datasetLastLoadUnix = auto.NewGauge(m.gaugeOpts("dataset_last_load_unix", "Unix timestamp of the last successful dataset load"))

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	// Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Panel Metrics Functions.

// RecordPanelRender counts a panel render. Outcome is "ok", "placeholder" or "error".
func RecordPanelRender(panel, outcome string) {
	globalManager.panelRenders.WithLabelValues(panel, outcome).Inc()
}

// RecordPanelRenderDuration records how long a panel took to render.
func RecordPanelRenderDuration(panel string, durationMs float64) {
	globalManager.panelRenderDuration.WithLabelValues(panel).Observe(durationMs)
}

// RecordComputeDuration records the duration of a core computation.
func RecordComputeDuration(operation string, durationMs float64) {
	globalManager.computeDuration.WithLabelValues(operation).Observe(durationMs)
}

// Cache Metrics Functions.

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheEviction increments the cache eviction counter.
func RecordCacheEviction() {
	globalManager.cacheEvictions.Inc()
}

// UpdateCacheEntries sets the number of cached entries.
func UpdateCacheEntries(count int) {
	globalManager.cacheEntries.Set(float64(count))
}

// Dataset Metrics Functions.

// UpdateDatasetSamples sets the number of samples in the active dataset.
func UpdateDatasetSamples(count int) {
	globalManager.datasetSamples.Set(float64(count))
}

// UpdateDatasetMaxMinute sets the last minute of the active dataset.
func UpdateDatasetMaxMinute(minute int) {
	globalManager.datasetMaxMinute.Set(float64(minute))
}

// RecordDatasetLoad counts a dataset load and records its duration on success.
func RecordDatasetLoad(outcome string, durationMs float64) {
	globalManager.datasetLoads.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		globalManager.datasetLoadDuration.Observe(durationMs)
		globalManager.datasetLastLoadUnix.Set(float64(time.Now().Unix()))
	}
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the refresh interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}

// Configure rebuilds the global metrics on a fresh registry with opts.
// Call it once at startup, before any metric is recorded concurrently.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
