package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// Metrics holds the playback counters.
type Metrics struct {
	Steps     *prometheus.CounterVec
	Resets    prometheus.Counter
	Halts     prometheus.Counter
	Completed prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "athena_steps_total",
				Help: "Total number of applied playback steps",
			},
			[]string{"direction", "kind"},
		),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "athena_resets_total",
			Help: "Total number of installed solutions",
		}),
		Halts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "athena_halts_total",
			Help: "Total number of playbacks halted on an invariant violation",
		}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "athena_playbacks_completed_total",
			Help: "Total number of forward steps that reached the last step",
		}),
	}
	for _, c := range []prometheus.Collector{m.Steps, m.Resets, m.Halts, m.Completed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records lifecycle events into the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnReset: func(context.Context, *domain.ResetEvent) {
			m.Resets.Inc()
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(string(e.Direction), e.Kind.String()).Inc()
			if e.Terminal && e.Direction == domain.Forward {
				m.Completed.Inc()
			}
		},
		OnHalt: func(context.Context, *domain.HaltEvent) {
			m.Halts.Inc()
		},
	}
}
