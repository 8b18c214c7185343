package observability

import (
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFA.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	backendDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	aiRequests      *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	pagosTotal      prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		backendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bfa_backend_request_duration_seconds",
				Help:    "Duration of core-API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		aiRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_ai_requests_total",
				Help: "Total requests to the recognition services.",
			},
			[]string{"service", "outcome"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
		pagosTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bfa_pagos_registrados_total",
				Help: "Total payments registered through this BFA.",
			},
		),
	}
}

// RecordBackendDuration records the duration of a core-API operation.
func (m *Metrics) RecordBackendDuration(operation string, d time.Duration) {
	m.backendDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrAIRequest counts one recognition-service call with its outcome
// (success, error, rejected).
func (m *Metrics) IncrAIRequest(service, outcome string) {
	m.aiRequests.WithLabelValues(service, outcome).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// IncrPagoRegistrado counts one successfully recorded payment.
func (m *Metrics) IncrPagoRegistrado() {
	m.pagosTotal.Inc()
}

// GetResumenOperacional snapshots the counters for the admin dashboard's
// health widget.
func (m *Metrics) GetResumenOperacional() *domain.ResumenOperacional {
	success := getCounterValue(m.requestsTotal, "success")
	errored := getCounterValue(m.requestsTotal, "error")
	total := success + errored

	cacheHits := getCounterValue(m.cacheHits, "unidades")
	cacheMisses := getCounterValue(m.cacheMisses, "unidades")

	backendErrors := getCounterValue(m.externalErrors, "expensas") +
		getCounterValue(m.externalErrors, "unidades") +
		getCounterValue(m.externalErrors, "residentes") +
		getCounterValue(m.externalErrors, "multas") +
		getCounterValue(m.externalErrors, "vehiculos") +
		getCounterValue(m.externalErrors, "mantenimiento") +
		getCounterValue(m.externalErrors, "pagos")

	aiTotal := getCounterValue(m.aiRequests, "faces", "success") +
		getCounterValue(m.aiRequests, "faces", "error") +
		getCounterValue(m.aiRequests, "plates", "success") +
		getCounterValue(m.aiRequests, "plates", "error")

	errorRate := float64(0)
	if total > 0 {
		errorRate = errored / total
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.ResumenOperacional{
		TotalSolicitudes: int64(total),
		TasaError:        errorRate,
		TasaAciertoCache: cacheHitRate,
		ErroresBackend:   int64(backendErrors),
		SolicitudesIA:    int64(aiTotal),
		Periodo:          "desde_arranque",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for
// the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
