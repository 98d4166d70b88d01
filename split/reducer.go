package split

import (
	"context"

	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/pure"
	"go.uber.org/zap"
)

// Reducer maps a state and an action to the next state.
// A nil state stands for the initial state. A no-op returns the given state itself.
type Reducer func(ctx context.Context, state model.State, action model.Action) model.State

// Pair is the result of Split.
type Pair struct {
	ActionCreators Creators
	InitialState   model.State
	Reducer        Reducer
}

const defaultResolveCacheSize = 1024

type options struct {
	logger           *zap.Logger
	resolveCacheSize uint32
}

// Option configures Split.
type Option func(*options)

// WithLogger sets the logger used for split and reduce diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithResolveCacheSize bounds the number of memoized action type resolutions.
func WithResolveCacheSize(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.resolveCacheSize = n
		}
	}
}

// Split seals m and derives its action creators, initial state and reducer.
//
// The reducer resolves the action type against m. Unresolved types, and members
// without a handler, are no-ops. Otherwise the handler runs against a
// model.Context holding the current state and the method table of m; an empty
// update is a no-op, anything else is merged over the current state.
func Split(m *model.Model, opts ...Option) (Pair, error) {
	o := options{
		logger:           zap.NewNop(),
		resolveCacheSize: defaultResolveCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m.Seal()
	parts, err := SplitObject(m, "", Parts{})
	if err != nil {
		return Pair{}, err
	}
	o.logger.Debug("split model",
		zap.Int("creators", countLeaves(parts.Creators)),
		zap.Int("stateFields", len(parts.InitialState)),
	)

	return Pair{
		ActionCreators: parts.Creators,
		InitialState:   parts.InitialState,
		Reducer:        newReducer(m, parts, o),
	}, nil
}

func newReducer(m *model.Model, parts Parts, o options) Reducer {
	// m is sealed, so resolution only depends on the path.
	resolve := pure.TableizeI1O2(func(typ model.Path) (model.Handler, bool) {
		member, ok := model.Resolve(m, typ)
		if !ok {
			return nil, false
		}
		h := member.Handler()
		return h, h != nil
	}, o.resolveCacheSize)

	return func(ctx context.Context, state model.State, action model.Action) model.State {
		if state == nil {
			state = parts.InitialState
		}
		impl, ok := resolve(action.Type)
		if !ok {
			o.logger.Debug("no handler for action", zap.Stringer("type", action.Type))
			return state
		}
		update := impl(model.NewContext(ctx, state, parts.Methods), action.Params...)
		if len(update) == 0 {
			return state
		}
		return state.Merge(update)
	}
}

func countLeaves(c Creators) int {
	n := 0
	for _, v := range c {
		if nested, ok := v.(Creators); ok {
			n += countLeaves(nested)
			continue
		}
		n++
	}
	return n
}
