package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	batchTotal     *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	batchInFlight  prometheus.Gauge
	queueLag       *prometheus.HistogramVec
	mentionsTotal  *prometheus.CounterVec
	incidentsTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	batchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandpulse",
			Subsystem: "worker",
			Name:      "batch_process_total",
			Help:      "Total processed mention batches by status.",
		},
		[]string{"service", "status"},
	)
	batchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandpulse",
			Subsystem: "worker",
			Name:      "batch_process_duration_seconds",
			Help:      "Batch analysis duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	batchInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "brandpulse",
			Subsystem: "worker",
			Name:      "batch_process_in_flight",
			Help:      "Number of in-flight batch analyses.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandpulse",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between batch ingestion and analysis start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	mentionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandpulse",
			Subsystem: "worker",
			Name:      "mentions_total",
			Help:      "Total analyzed mentions by outcome.",
		},
		[]string{"service", "outcome"},
	)
	incidentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandpulse",
			Subsystem: "worker",
			Name:      "crisis_incidents_total",
			Help:      "Total crisis incidents raised by delivery status.",
		},
		[]string{"service", "status"},
	)
	registry.MustRegister(batchTotal, batchDuration, batchInFlight, queueLag, mentionsTotal, incidentsTotal)

	return &WorkerMetrics{
		registry:       registry,
		batchTotal:     batchTotal,
		batchDuration:  batchDuration,
		batchInFlight:  batchInFlight,
		queueLag:       queueLag,
		mentionsTotal:  mentionsTotal,
		incidentsTotal: incidentsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartBatch() {
	m.batchInFlight.Inc()
}

func (m *WorkerMetrics) FinishBatch(service string, duration time.Duration, err error) {
	m.batchInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.batchTotal.WithLabelValues(service, status).Inc()
	m.batchDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) RecordIncident(service string, err error) {
	status := "delivered"
	if err != nil {
		status = "failed"
	}
	m.incidentsTotal.WithLabelValues(service, status).Inc()
}

func (m *WorkerMetrics) RecordMentionOutcomes(service string, classified, skipped int) {
	if classified > 0 {
		m.mentionsTotal.WithLabelValues(service, "classified").Add(float64(classified))
	}
	if skipped > 0 {
		m.mentionsTotal.WithLabelValues(service, "skipped").Add(float64(skipped))
	}
}
