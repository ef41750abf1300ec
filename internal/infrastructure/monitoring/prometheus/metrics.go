package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric family the services record.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis layer
	AnalysesTotal    CounterVec
	AnalysisDuration HistogramVec
	AspectsPerChart  HistogramVec
	PatternsTotal    CounterVec
	SkippedBodies    CounterVec
	BatchSize        HistogramVec

	// Infrastructure layer
	CacheHitsTotal         CounterVec
	CacheMissesTotal       CounterVec
	MessagesTotal          CounterVec
	MessageProcessDuration HistogramVec

	ErrorsTotal CounterVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultAnalysisDurationBuckets = []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1}
	DefaultCountBuckets            = []float64{0, 5, 10, 15, 20, 30, 40, 60, 78}
	DefaultBatchBuckets            = []float64{1, 5, 10, 25, 50, 100, 250, 500}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method")

	m.AnalysesTotal = collector.RegisterCounter("analyses_total", "Chart analyses by outcome", "status")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "Chart analysis duration", DefaultAnalysisDurationBuckets, "source")
	m.AspectsPerChart = collector.RegisterHistogram("aspects_per_chart", "Aspects found per chart", DefaultCountBuckets)
	m.PatternsTotal = collector.RegisterCounter("patterns_total", "Selected patterns by type", "type")
	m.SkippedBodies = collector.RegisterCounter("skipped_bodies_total", "Body positions ignored during input validation", "reason")
	m.BatchSize = collector.RegisterHistogram("batch_size", "Charts per batch request", DefaultBatchBuckets, "transport")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.MessagesTotal = collector.RegisterCounter("messages_total", "Messages handled by the worker", "topic", "status")
	m.MessageProcessDuration = collector.RegisterHistogram("message_process_duration_seconds", "Message processing duration", DefaultHTTPDurationBuckets, "topic")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "code")

	return m
}

// Helpers

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAnalysis records one finished analysis. source is "engine" or "cache".
func RecordAnalysis(m *AppMetrics, source string, duration time.Duration, aspects int, patternTypes []string) {
	m.AnalysesTotal.WithLabelValues("success").Inc()
	m.AnalysisDuration.WithLabelValues(source).Observe(duration.Seconds())
	m.AspectsPerChart.WithLabelValues().Observe(float64(aspects))
	for _, typ := range patternTypes {
		m.PatternsTotal.WithLabelValues(typ).Inc()
	}
}

func RecordAnalysisFailure(m *AppMetrics, code string) {
	m.AnalysesTotal.WithLabelValues("failure").Inc()
	m.ErrorsTotal.WithLabelValues("analysis", code).Inc()
}

func RecordSkippedBody(m *AppMetrics, reason string) {
	m.SkippedBodies.WithLabelValues(reason).Inc()
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordMessage(m *AppMetrics, topic string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.MessagesTotal.WithLabelValues(topic, status).Inc()
	m.MessageProcessDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

func RecordError(m *AppMetrics, component, code string) {
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
