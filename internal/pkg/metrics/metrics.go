// Package metrics exposes Prometheus instrumentation for the salary engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	calculations *prometheus.CounterVec
	errors       prometheus.Counter
	duration     prometheus.Histogram
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
}

// New registers the engine collectors on the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salary",
			Name:      "calculations_total",
			Help:      "Completed salary calculations, labeled by call mode.",
		}, []string{"mode"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salary",
			Name:      "calculation_errors_total",
			Help:      "Salary calculations that failed against the record store.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salary",
			Name:      "calculation_duration_seconds",
			Help:      "Wall time of a single-teacher salary calculation.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salary",
			Name:      "cache_hits_total",
			Help:      "Salary results served from the result cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salary",
			Name:      "cache_misses_total",
			Help:      "Salary results recomputed after a cache miss.",
		}),
	}

	reg.MustRegister(m.calculations, m.errors, m.duration, m.cacheHits, m.cacheMisses)
	return m
}

func (m *Metrics) ObserveCalculation(mode string, took time.Duration) {
	m.calculations.WithLabelValues(mode).Inc()
	m.duration.Observe(took.Seconds())
}

func (m *Metrics) ObserveError()     { m.errors.Inc() }
func (m *Metrics) ObserveCacheHit()  { m.cacheHits.Inc() }
func (m *Metrics) ObserveCacheMiss() { m.cacheMisses.Inc() }
