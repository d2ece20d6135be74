package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/ostia/pkg/domain"
)

// Apply outcomes recorded by ObserveApply.
const (
	ApplyDefined   = "defined"
	ApplyUndefined = "undefined"
	ApplyError     = "error"
)

// Metrics holds the collectors fed by the learner hooks.
type Metrics struct {
	Samples       prometheus.Counter
	Folds         *prometheus.CounterVec
	Promotions    prometheus.Counter
	Runs          prometheus.Counter
	RedStates     prometheus.Gauge
	LearnDuration prometheus.Histogram
	Applies       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ostia_samples_total",
			Help: "Total number of samples inserted into prefix trees",
		}),
		Folds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ostia_folds_total",
				Help: "Total number of fold attempts by outcome",
			},
			[]string{"result"},
		),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ostia_promotions_total",
			Help: "Total number of blue states promoted to red",
		}),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ostia_learn_runs_total",
			Help: "Total number of completed learning runs",
		}),
		RedStates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ostia_last_red_states",
			Help: "Number of states in the most recently learned transducer",
		}),
		LearnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ostia_merge_duration_seconds",
			Help:    "Duration of the state merging phase",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		Applies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ostia_applies_total",
				Help: "Total number of transductions served by outcome",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.Samples, m.Folds, m.Promotions, m.Runs, m.RedStates, m.LearnDuration, m.Applies)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(_ context.Context, _ *domain.SampleEvent) {
			m.Samples.Inc()
		},
		OnFold: func(_ context.Context, e *domain.FoldEvent) {
			result := "fail"
			if e.Success {
				result = "ok"
			}
			m.Folds.WithLabelValues(result).Inc()
		},
		OnPromote: func(_ context.Context, _ *domain.PromoteEvent) {
			m.Promotions.Inc()
		},
		OnComplete: func(_ context.Context, e *domain.CompleteEvent) {
			m.Runs.Inc()
			m.RedStates.Set(float64(e.RedStates))
			m.LearnDuration.Observe(e.Duration.Seconds())
		},
	}
}

// ObserveApply counts one transduction outcome.
func (m *Metrics) ObserveApply(result string) {
	m.Applies.WithLabelValues(result).Inc()
}
