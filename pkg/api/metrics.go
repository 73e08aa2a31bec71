package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssargent/lgeparse/pkg/parser"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	gatherer prometheus.Gatherer

	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Parse metrics
	parsesTotal      *prometheus.CounterVec
	parseDuration    prometheus.Histogram
	parseInputBytes  prometheus.Histogram
	recordsDecoded   *prometheus.CounterVec
	recordsDiscarded *prometheus.CounterVec

	// Archive metrics
	archiveOperationsTotal   *prometheus.CounterVec
	archiveOperationDuration *prometheus.HistogramVec

	authRequestsTotal *prometheus.CounterVec
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		gatherer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lgeparse_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lgeparse_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		parsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_parses_total",
				Help: "Total number of league files parsed",
			},
			[]string{"status"},
		),

		parseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lgeparse_parse_duration_seconds",
				Help:    "Time spent decoding a league file",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),

		parseInputBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lgeparse_parse_input_bytes",
				Help:    "Size of decoded league payloads in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),

		recordsDecoded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_records_decoded_total",
				Help: "Records stored by parse sessions",
			},
			[]string{"kind"},
		),

		recordsDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_records_discarded_total",
				Help: "Located blocks dropped because the store was full",
			},
			[]string{"kind"},
		),

		archiveOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_archive_operations_total",
				Help: "Total number of archive operations",
			},
			[]string{"operation", "status"},
		),

		archiveOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lgeparse_archive_operation_duration_seconds",
				Help:    "Archive operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lgeparse_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveParse records the outcome of a parse session
func (m *Metrics) ObserveParse(res *parser.Result, err error) {
	if err != nil || res == nil {
		m.parsesTotal.WithLabelValues(statusError).Inc()
		return
	}

	m.parsesTotal.WithLabelValues(statusSuccess).Inc()
	m.parseDuration.Observe(res.Duration.Seconds())
	m.parseInputBytes.Observe(float64(res.Source.Size))

	counts := res.Store.Counts()
	m.recordsDecoded.WithLabelValues("conference").Add(float64(counts.Conferences))
	m.recordsDecoded.WithLabelValues("division").Add(float64(counts.Divisions))
	m.recordsDecoded.WithLabelValues("team").Add(float64(counts.Teams))

	m.recordsDiscarded.WithLabelValues("conference").Add(float64(res.Ignored.Conferences))
	m.recordsDiscarded.WithLabelValues("division").Add(float64(res.Ignored.Divisions))
	m.recordsDiscarded.WithLabelValues("team").Add(float64(res.Ignored.Teams))
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordArchiveOperation records an archive operation
func (m *Metrics) RecordArchiveOperation(operation string, success bool, duration time.Duration) {
	m.archiveOperationsTotal.WithLabelValues(operation, status(success)).Inc()
	m.archiveOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	m.authRequestsTotal.WithLabelValues(status(success)).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	m.healthChecksTotal.WithLabelValues(status(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

func status(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
