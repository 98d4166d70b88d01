package store_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithLogging_LogsDispatches(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := store.New(counter(t).Reducer, nil, store.WithLogging(zap.New(core)))

	ctx := context.Background()
	_, err := s.Dispatch(ctx, model.NewAction("inc"))
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, model.NewAction("noop"))
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, "inc")
	require.ErrorIs(t, err, store.ErrNotAnAction)

	entries := logs.FilterMessage("dispatch").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "inc", entries[0].ContextMap()["type"])
	assert.Equal(t, true, entries[0].ContextMap()["changed"])
	assert.Equal(t, false, entries[1].ContextMap()["changed"])
	assert.Equal(t, s.ID().String(), entries[0].ContextMap()["store"])

	assert.Equal(t, 1, logs.FilterMessage("dispatch failed").Len())
}

func TestWithMetrics_CountsReductions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := store.NewMetrics(reg)
	require.NoError(t, err)

	s := store.New(counter(t).Reducer, nil, store.WithMetrics(m))
	ctx := context.Background()
	for _, typ := range []model.Path{"inc", "inc", "noop"} {
		_, err := s.Dispatch(ctx, model.NewAction(typ))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Dispatches.WithLabelValues("inc")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dispatches.WithLabelValues("noop")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StateChanges.WithLabelValues("inc")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StateChanges.WithLabelValues("noop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dispatches.WithLabelValues(store.InitAction.String())))
}

func TestWithMetrics_NilIsIdentity(t *testing.T) {
	s := store.New(counter(t).Reducer, nil, store.WithMetrics(nil))

	_, err := s.Dispatch(context.Background(), model.NewAction("inc"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.GetState()["n"])
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := store.NewMetrics(reg)
	require.NoError(t, err)
	second, err := store.NewMetrics(reg)
	require.NoError(t, err)

	assert.Same(t, first.Dispatches, second.Dispatches)
	assert.Same(t, first.ReduceDuration, second.ReduceDuration)
}
