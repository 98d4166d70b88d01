package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/action_object_go/shared/helper"
)

// Action is the value dispatched for a handler: its Path and the positional call parameters.
type Action struct {
	Type   Path
	Params []any
}

// NewAction builds an Action of the given type.
func NewAction(typ Path, params ...any) Action {
	return Action{Type: typ, Params: params}
}

// ActionCreator builds a dispatchable value from call parameters.
type ActionCreator func(params ...any) any

// Dispatch sends an action to a store.
type Dispatch func(ctx context.Context, action any) (any, error)

// Effect is a deferred callback run after a state commit. It receives the
// committed state and the dispatch function of the store that committed it.
type Effect func(ctx context.Context, s State, dispatch Dispatch)

// EffectSink collects effects queued while a handler runs.
type EffectSink interface {
	Push(f Effect)
}

type effectSinkKey struct{}

// WithEffectSink returns a context carrying sink.
func WithEffectSink(ctx context.Context, sink EffectSink) context.Context {
	return context.WithValue(ctx, effectSinkKey{}, sink)
}

// EffectSinkFrom returns the sink installed in ctx, if any.
func EffectSinkFrom(ctx context.Context) (EffectSink, bool) {
	if ctx == nil {
		return nil, false
	}
	return helper.GetTypedValueOf2[EffectSink](func() (any, bool) {
		v := ctx.Value(effectSinkKey{})
		return v, v != nil
	})
}

// ErrBadParam is returned by Param when a parameter is missing or has the wrong type.
var ErrBadParam = errors.New("bad action parameter")

// Param returns params[i] as a T.
func Param[T any](params []any, i int) (T, error) {
	v, err := helper.GetTypedValueOf[T](func() (any, error) {
		if i < 0 || i >= len(params) {
			return nil, fmt.Errorf("index %d out of %d", i, len(params))
		}
		return params[i], nil
	})
	if err != nil {
		return v, fmt.Errorf("%w: param %d: %w", ErrBadParam, i, err)
	}
	return v, nil
}
