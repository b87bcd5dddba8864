// Package metrics exposes Prometheus collectors for validation and ingestion.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wikibase_api"

// Ingest outcomes.
const (
	OutcomeCreated = "created"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	ingests     *prometheus.CounterVec
	statements  *prometheus.CounterVec
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates and registers all collectors, including Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Records validated, by resource type and result.",
		}, []string{"resource_type", "result"}),
		ingests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingests_total",
			Help:      "Ingest runs, by outcome.",
		}, []string{"outcome"}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Statements written to Wikibase, by property and result.",
		}, []string{"property", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.validations,
		m.ingests,
		m.statements,
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveValidation counts one validated record.
func (m *Metrics) ObserveValidation(resourceType string, valid bool) {
	m.validations.WithLabelValues(resourceType, result(valid)).Inc()
}

// ObserveIngest counts one ingest run.
func (m *Metrics) ObserveIngest(outcome string) {
	m.ingests.WithLabelValues(outcome).Inc()
}

// ObserveStatement counts one statement write.
func (m *Metrics) ObserveStatement(property string, ok bool) {
	m.statements.WithLabelValues(property, result(ok)).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
