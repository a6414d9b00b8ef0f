// Package telemetry exposes the prometheus metrics of the deployment pipelines.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appErr "github.com/iac-studio/converge/pkg/errors"
)

// Metrics records pipeline runs. A nil *Metrics is a no-op.
type Metrics struct {
	pipelineRuns     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	errorsByTag      *prometheus.CounterVec
	readinessWaits   *prometheus.HistogramVec
	activePipelines  prometheus.Gauge

	registry *prometheus.Registry
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		pipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of service pipelines run",
			},
			[]string{"service_type", "action", "outcome"},
		),
		pipelineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_duration_seconds",
				Help:      "Duration of service pipelines in seconds",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
			},
			[]string{"service_type", "action"},
		),
		errorsByTag: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_errors_total",
				Help:      "Total number of pipeline errors by tag",
			},
			[]string{"tag"},
		),
		readinessWaits: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "readiness_wait_seconds",
				Help:      "Time spent waiting for pods to become ready",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
			},
			[]string{"outcome"},
		),
		activePipelines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_pipelines",
				Help:      "Number of service pipelines currently running",
			},
		),
	}

	registry.MustRegister(
		m.pipelineRuns,
		m.pipelineDuration,
		m.errorsByTag,
		m.readinessWaits,
		m.activePipelines,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// PipelineStarted must be paired with PipelineFinished.
func (m *Metrics) PipelineStarted() {
	if m == nil {
		return
	}
	m.activePipelines.Inc()
}

// PipelineFinished records the outcome of one service pipeline. A non nil err is counted under its tag.
func (m *Metrics) PipelineFinished(serviceType, action string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.activePipelines.Dec()
	outcome := "success"
	if err != nil {
		outcome = "error"
		tag := appErr.TagUnknown
		if ee, ok := appErr.AsEngineError(err); ok {
			tag = ee.Tag
		}
		m.errorsByTag.WithLabelValues(tag.String()).Inc()
	}
	m.pipelineRuns.WithLabelValues(serviceType, action, outcome).Inc()
	m.pipelineDuration.WithLabelValues(serviceType, action).Observe(duration.Seconds())
}

func (m *Metrics) ObserveReadinessWait(duration time.Duration, ready bool) {
	if m == nil {
		return
	}
	outcome := "ready"
	if !ready {
		outcome = "not_ready"
	}
	m.readinessWaits.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
