package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomeLimited = "rate_limited"
)

// Metrics holds the Prometheus collectors for roll evaluation.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	diceDrawn   prometheus.Histogram
	sessions    prometheus.Gauge
}

// NewMetrics creates collectors registered on a private registry.
//
// Postcondition: Returns Metrics whose Handler serves only these collectors
// plus the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dicebot",
			Name:      "evaluations_total",
			Help:      "Roll commands evaluated, by outcome.",
		}, []string{"outcome"}),
		diceDrawn: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dicebot",
			Name:      "dice_drawn",
			Help:      "Individual dice drawn per successful evaluation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dicebot",
			Name:      "active_sessions",
			Help:      "Connected chat sessions.",
		}),
	}
	m.registry.MustRegister(
		m.evaluations,
		m.diceDrawn,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveEvaluation records one roll command. dice is ignored unless outcome is OutcomeOK.
func (m *Metrics) ObserveEvaluation(outcome string, dice int) {
	m.evaluations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.diceDrawn.Observe(float64(dice))
	}
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
