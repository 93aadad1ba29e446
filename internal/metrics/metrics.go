// Package metrics defines the Prometheus collectors of the assistant.
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sahayak"

// Metrics groups the assistant's collectors.
type Metrics struct {
	QueriesTotal        *prometheus.CounterVec
	SearchFailuresTotal *prometheus.CounterVec
	SynthesizedTotal    *prometheus.CounterVec
	CatalogReloadsTotal *prometheus.CounterVec
	RespondDuration     prometheus.Histogram
}

// New registers the collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total number of assistant queries by detected intent",
			},
			[]string{"intent"},
		),
		SearchFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_failures_total",
				Help:      "Total number of provider searches that failed soft",
			},
			[]string{"reason"},
		),
		SynthesizedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "synthesized_providers_total",
				Help:      "Total number of synthetic providers generated to top up results",
			},
			[]string{"category"},
		),
		CatalogReloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Total number of catalog reload attempts by result",
			},
			[]string{"result"},
		),
		RespondDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "respond_duration_seconds",
				Help:      "Duration of assistant respond calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
	}
}

func (m *Metrics) ObserveQuery(intent string) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(intent).Inc()
}

func (m *Metrics) ObserveSearchFailure(reason string) {
	if m == nil {
		return
	}
	m.SearchFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveSynthesized(category string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SynthesizedTotal.WithLabelValues(category).Add(float64(n))
}

// ObserveReload records a reload attempt; err == nil counts as success.
func (m *Metrics) ObserveReload(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CatalogReloadsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRespond(d time.Duration) {
	if m == nil {
		return
	}
	m.RespondDuration.Observe(d.Seconds())
}
