package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for passage_requirements_total.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	Requests       *prometheus.CounterVec
	VisaRequired   *prometheus.CounterVec
	DeriveDuration prometheus.Histogram
	CacheRequests  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passage_requirements_total",
				Help: "Total number of requirement lookups by outcome",
			},
			[]string{"outcome"},
		),
		VisaRequired: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passage_visa_required_total",
				Help: "Answered lookups split by whether a visa is needed",
			},
			[]string{"visa_needed"},
		),
		DeriveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "passage_derive_duration_seconds",
				Help:    "Duration of requirement derivations, cache included",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
		),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passage_cache_requests_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.VisaRequired, m.DeriveDuration, m.CacheRequests)
	}
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnDerive: func(ctx context.Context, e *DeriveEvent) {
			m.Requests.WithLabelValues(OutcomeOK).Inc()
			m.VisaRequired.WithLabelValues(strconv.FormatBool(e.VisaNeeded)).Inc()
			m.DeriveDuration.Observe(e.Duration.Seconds())
		},
		OnError: func(ctx context.Context, e *ErrorEvent) {
			m.Requests.WithLabelValues(OutcomeInvalid).Inc()
		},
		OnCache: func(ctx context.Context, e *CacheEvent) {
			m.CacheRequests.WithLabelValues(e.Result).Inc()
		},
	}
}
