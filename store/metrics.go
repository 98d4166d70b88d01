package store

import (
	"context"
	"errors"
	"time"

	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/split"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the collectors fed by WithMetrics.
type Metrics struct {
	Dispatches     *prometheus.CounterVec
	StateChanges   *prometheus.CounterVec
	ReduceDuration prometheus.Histogram
}

// NewMetrics creates the store collectors and registers them with reg.
// Collectors already registered under the same names are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "action_object",
			Subsystem: "store",
			Name:      "dispatches_total",
			Help:      "Actions reduced, by action type.",
		}, []string{"type"}),
		StateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "action_object",
			Subsystem: "store",
			Name:      "state_changes_total",
			Help:      "Reductions that produced a new state, by action type.",
		}, []string{"type"}),
		ReduceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "action_object",
			Subsystem: "store",
			Name:      "reduce_duration_seconds",
			Help:      "Time spent in the reducer.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.Dispatches, err = register(reg, m.Dispatches); err != nil {
		return nil, err
	}
	if m.StateChanges, err = register(reg, m.StateChanges); err != nil {
		return nil, err
	}
	if m.ReduceDuration, err = register(reg, m.ReduceDuration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// WithMetrics instruments the reducer of every store it creates.
// A nil m leaves the store uninstrumented.
func WithMetrics(m *Metrics) Enhancer {
	if m == nil {
		return func(next CreateFunc) CreateFunc { return next }
	}
	return func(next CreateFunc) CreateFunc {
		return func(reducer split.Reducer, initial model.State) Store {
			return next(m.instrument(reducer), initial)
		}
	}
}

func (m *Metrics) instrument(reducer split.Reducer) split.Reducer {
	return func(ctx context.Context, state model.State, action model.Action) model.State {
		start := time.Now()
		next := reducer(ctx, state, action)
		m.ReduceDuration.Observe(time.Since(start).Seconds())

		typ := action.Type.String()
		m.Dispatches.WithLabelValues(typ).Inc()
		if !model.Same(state, next) {
			m.StateChanges.WithLabelValues(typ).Inc()
		}
		return next
	}
}
