package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	batchesIngestedTotal *prometheus.CounterVec
	ingestedMentions     *prometheus.HistogramVec
	syncAnalysisTotal    *prometheus.CounterVec
	syncAnalysisDuration *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandpulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandpulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "brandpulse",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	batchesIngestedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandpulse",
			Subsystem: "ingest",
			Name:      "batches_total",
			Help:      "Total accepted mention batches.",
		},
		[]string{"service"},
	)
	ingestedMentions := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandpulse",
			Subsystem: "ingest",
			Name:      "batch_mentions",
			Help:      "Distribution of mentions per accepted batch.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"service"},
	)
	syncAnalysisTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandpulse",
			Subsystem: "analysis",
			Name:      "sync_requests_total",
			Help:      "Total synchronous analysis requests by status.",
		},
		[]string{"service", "status"},
	)
	syncAnalysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandpulse",
			Subsystem: "analysis",
			Name:      "sync_duration_seconds",
			Help:      "Synchronous analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		batchesIngestedTotal,
		ingestedMentions,
		syncAnalysisTotal,
		syncAnalysisDuration,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		batchesIngestedTotal: batchesIngestedTotal,
		ingestedMentions:     ingestedMentions,
		syncAnalysisTotal:    syncAnalysisTotal,
		syncAnalysisDuration: syncAnalysisDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses batch IDs so the path label stays low-cardinality.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/batches/") && strings.HasSuffix(path, "/result"):
		return "/v1/batches/{batch_id}/result"
	case strings.HasPrefix(path, "/v1/batches/"):
		return "/v1/batches/{batch_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordBatchIngested(service string, mentionCount int) {
	m.batchesIngestedTotal.WithLabelValues(service).Inc()
	m.ingestedMentions.WithLabelValues(service).Observe(float64(mentionCount))
}

func (m *HTTPServerMetrics) RecordSyncAnalysis(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.syncAnalysisTotal.WithLabelValues(service, status).Inc()
	m.syncAnalysisDuration.WithLabelValues(service).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
