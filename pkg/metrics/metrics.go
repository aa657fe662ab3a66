package metrics

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels for the activations counter
const (
	OutcomeMatch   = "match"   // a case handler matched the reference
	OutcomeDefault = "default" // the default handler ran
	OutcomeError   = "error"   // activation failed (e.g. no default declared)
)

// Recorder tracks activation metrics for machine runs. It owns its registry
// so a dump or scrape shows only dispatch metrics, and so tests don't
// collide on the global default registry.
type Recorder struct {
	registry *prometheus.Registry

	activations *prometheus.CounterVec
	caseHits    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder creates a recorder with its collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		activations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchcase_activations_total",
				Help: "Total activations by machine and outcome",
			},
			[]string{"machine", "outcome"},
		),
		caseHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchcase_case_hits_total",
				Help: "Total case handler hits by machine and label",
			},
			[]string{"machine", "label"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "switchcase_activation_duration_seconds",
				Help:    "Activation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
			[]string{"machine"},
		),
	}

	r.registry.MustRegister(r.activations, r.caseHits, r.duration)

	return r
}

// RecordActivation counts one activation and observes its latency
func (r *Recorder) RecordActivation(machine, outcome string, seconds float64) {
	r.activations.WithLabelValues(machine, outcome).Inc()
	r.duration.WithLabelValues(machine).Observe(seconds)
}

// RecordCaseHit counts a hit on a specific label ("__default__" included)
func (r *Recorder) RecordCaseHit(machine, label string) {
	r.caseHits.WithLabelValues(machine, label).Inc()
}

// Registry exposes the underlying registry so callers can attach additional
// collectors (host stats gauges in serve mode)
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns the HTTP handler for /metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Dump renders the current metrics in the Prometheus text exposition format
func (r *Recorder) Dump() (string, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("failed to encode metric family %q: %w", mf.GetName(), err)
		}
	}

	return buf.String(), nil
}
