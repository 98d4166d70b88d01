// Package bind wraps a tree of action creators so that calling a leaf dispatches its action.
package bind

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/split"
)

// ErrNoSuchAction is returned by Bound.Call for a path without a bound creator.
var ErrNoSuchAction = errors.New("no such action")

// BoundFunc builds an action from params and dispatches it, returning what dispatch returns.
type BoundFunc func(ctx context.Context, params ...any) (any, error)

// Bound mirrors split.Creators: leaves are BoundFunc, nested creators are Bound.
type Bound map[string]any

// Bind walks creators and binds every leaf to dispatch.
// Values that are neither creators nor nested creators are skipped.
func Bind(creators split.Creators, dispatch model.Dispatch) Bound {
	r := make(Bound, len(creators))
	for key, v := range creators {
		switch v := v.(type) {
		case model.ActionCreator:
			r[key] = bindCreator(v, dispatch)
		case split.Creators:
			r[key] = Bind(v, dispatch)
		}
	}
	return r
}

func bindCreator(create model.ActionCreator, dispatch model.Dispatch) BoundFunc {
	return func(ctx context.Context, params ...any) (any, error) {
		return dispatch(ctx, create(params...))
	}
}

// Func resolves a dotted path to a bound creator.
func (b Bound) Func(path model.Path) (BoundFunc, bool) {
	var cur any = b
	for _, seg := range path.Segments() {
		nested, ok := cur.(Bound)
		if !ok {
			return nil, false
		}
		if cur, ok = nested[seg]; !ok {
			return nil, false
		}
	}
	fn, ok := cur.(BoundFunc)
	return fn, ok
}

// Call invokes the bound creator at path.
func (b Bound) Call(ctx context.Context, path model.Path, params ...any) (any, error) {
	fn, ok := b.Func(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchAction, path)
	}
	return fn(ctx, params...)
}
