package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/on-the-ground/action_object_go/bind"
	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/split"
	"github.com/on-the-ground/action_object_go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inc(c *model.Context, params ...any) model.Update {
	n, _ := model.Value[int](c, "n")
	by := 1
	if len(params) > 0 {
		by, _ = params[0].(int)
	}
	return model.Update{"n": n + by}
}

func counter(t *testing.T) split.Pair {
	t.Helper()
	pair, err := split.Split(model.New().
		Set("n", 0).
		Action("inc", inc).
		Action("noop", func(*model.Context, ...any) model.Update { return nil }))
	require.NoError(t, err)
	return pair
}

func TestNew_InitialState(t *testing.T) {
	pair := counter(t)

	s := store.New(pair.Reducer, nil)
	assert.True(t, model.Same(pair.InitialState, s.GetState()))

	preloaded := model.State{"n": 41}
	s = store.New(pair.Reducer, preloaded)
	assert.True(t, model.Same(preloaded, s.GetState()))
	assert.NotEqual(t, store.New(pair.Reducer, nil).ID(), s.ID())
}

func TestStore_DispatchNotifiesListenersInOrder(t *testing.T) {
	s := store.New(counter(t).Reducer, nil)

	var calls []string
	s.Subscribe(func(context.Context) { calls = append(calls, "first") })
	unsubscribe := s.Subscribe(func(context.Context) { calls = append(calls, "second") })

	res, err := s.Dispatch(context.Background(), model.NewAction("inc"))
	require.NoError(t, err)
	assert.Equal(t, model.NewAction("inc"), res)
	assert.Equal(t, 1, s.GetState()["n"])
	assert.Equal(t, []string{"first", "second"}, calls)

	unsubscribe()
	unsubscribe()
	calls = nil
	_, err = s.Dispatch(context.Background(), model.NewAction("noop"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, calls, "listeners run on no-op dispatches too")
}

func TestStore_NoopKeepsStateReference(t *testing.T) {
	s := store.New(counter(t).Reducer, nil)
	before := s.GetState()

	_, err := s.Dispatch(context.Background(), model.NewAction("noop"))
	require.NoError(t, err)
	assert.True(t, model.Same(before, s.GetState()))
}

func TestStore_RejectsNonActions(t *testing.T) {
	s := store.New(counter(t).Reducer, nil)

	_, err := s.Dispatch(context.Background(), map[string]any{"type": "inc"})
	assert.ErrorIs(t, err, store.ErrNotAnAction)
	assert.Equal(t, 0, s.GetState()["n"])
}

func TestStore_RejectsDispatchFromReducer(t *testing.T) {
	var (
		s        store.Store
		innerErr error
	)
	pair, err := split.Split(model.New().
		Set("n", 0).
		Action("inc", inc).
		Action("nested", func(c *model.Context, _ ...any) model.Update {
			_, innerErr = s.Dispatch(c, model.NewAction("inc"))
			return nil
		}))
	require.NoError(t, err)
	s = store.New(pair.Reducer, nil)

	_, err = s.Dispatch(context.Background(), model.NewAction("nested"))
	require.NoError(t, err)
	assert.ErrorIs(t, innerErr, store.ErrReducerDispatch)
	assert.Equal(t, 0, s.GetState()["n"])
}

// within fails t if f does not return in time, so a wedged store fails
// instead of hanging the suite.
func within(t *testing.T, f func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		f()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store call did not return")
	}
}

func TestStore_RejectsDispatchFromReducerWithFreshContext(t *testing.T) {
	var (
		s        store.Store
		innerErr error
	)
	pair, err := split.Split(model.New().
		Set("n", 0).
		Action("inc", inc).
		Action("nested", func(*model.Context, ...any) model.Update {
			_, innerErr = s.Dispatch(context.Background(), model.NewAction("inc"))
			return model.Update{"n": -1}
		}))
	require.NoError(t, err)
	s = store.New(pair.Reducer, nil)

	within(t, func() {
		_, err = s.Dispatch(context.Background(), model.NewAction("nested"))
	})
	require.NoError(t, err)
	assert.ErrorIs(t, innerErr, store.ErrReducerDispatch)
	assert.Equal(t, -1, s.GetState()["n"])

	_, err = s.Dispatch(context.Background(), model.NewAction("inc"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.GetState()["n"])
}

func TestStore_UsableAfterHandlerPanic(t *testing.T) {
	pair, err := split.Split(model.New().
		Set("n", 0).
		Action("inc", inc).
		Action("set", func(_ *model.Context, params ...any) model.Update {
			return model.Update{"n": params[0]}
		}))
	require.NoError(t, err)
	s := store.New(pair.Reducer, nil)
	before := s.GetState()

	within(t, func() {
		assert.Panics(t, func() {
			_, _ = s.Dispatch(context.Background(), model.NewAction("set"))
		})
	})

	var state model.State
	within(t, func() { state = s.GetState() })
	assert.True(t, model.Same(before, state), "a panicking handler leaves the state untouched")

	within(t, func() {
		_, err = s.Dispatch(context.Background(), model.NewAction("inc"))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.GetState()["n"])
}

func TestStore_ListenersMayDispatch(t *testing.T) {
	s := store.New(counter(t).Reducer, nil)

	var once bool
	s.Subscribe(func(ctx context.Context) {
		if once {
			return
		}
		once = true
		_, err := s.Dispatch(ctx, model.NewAction("inc", 10))
		assert.NoError(t, err)
	})

	_, err := s.Dispatch(context.Background(), model.NewAction("inc"))
	require.NoError(t, err)
	assert.Equal(t, 11, s.GetState()["n"])
}

type tracingStore struct {
	store.Store
	name  string
	trace *[]string
}

func (s tracingStore) Dispatch(ctx context.Context, action any) (any, error) {
	*s.trace = append(*s.trace, s.name)
	return s.Store.Dispatch(ctx, action)
}

func tracing(name string, trace *[]string) store.Enhancer {
	return func(next store.CreateFunc) store.CreateFunc {
		return func(reducer split.Reducer, initial model.State) store.Store {
			return tracingStore{Store: next(reducer, initial), name: name, trace: trace}
		}
	}
}

func TestCompose_FirstIsOutermost(t *testing.T) {
	var trace []string
	s := store.New(counter(t).Reducer, nil,
		tracing("outer", &trace),
		nil,
		tracing("inner", &trace),
	)

	_, err := s.Dispatch(context.Background(), model.NewAction("inc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, trace)
}

func TestStore_BoundCreators(t *testing.T) {
	pair := counter(t)
	s := store.New(pair.Reducer, nil)
	actions := bind.Bind(pair.ActionCreators, s.Dispatch)

	ctx := context.Background()
	_, err := actions.Call(ctx, "inc")
	require.NoError(t, err)
	_, err = actions.Call(ctx, "inc", 5)
	require.NoError(t, err)

	assert.Equal(t, 6, s.GetState()["n"])
}
