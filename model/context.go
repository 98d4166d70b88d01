package model

import (
	"context"

	"github.com/on-the-ground/action_object_go/shared/helper"
)

// Handler computes a partial state update for an action.
type Handler func(c *Context, params ...any) Update

// MethodTable maps member names to handlers. Sub-models appear as nested tables.
type MethodTable map[string]any

// Lookup resolves a dotted path to a handler.
func (t MethodTable) Lookup(path Path) (Handler, bool) {
	var cur any = t
	for _, seg := range path.Segments() {
		table, ok := cur.(MethodTable)
		if !ok {
			return nil, false
		}
		if cur, ok = table[seg]; !ok {
			return nil, false
		}
	}
	h, ok := cur.(Handler)
	return h, ok && h != nil
}

// Context is the receiver a handler runs against: the state before the action,
// the root method table for sibling calls, and the dispatch context.
type Context struct {
	context.Context
	state   State
	methods MethodTable
}

// NewContext builds a handler receiver.
func NewContext(ctx context.Context, state State, methods MethodTable) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{Context: ctx, state: state, methods: methods}
}

// State returns the state the handler was invoked with.
func (c *Context) State() State { return c.state }

// Get returns a top-level state field.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.state[key]
	return v, ok
}

// Value returns a top-level state field as a T.
func Value[T any](c *Context, key string) (T, bool) {
	return helper.GetTypedValueOf2[T](func() (any, bool) {
		return c.Get(key)
	})
}

// Call invokes a sibling handler against the same receiver and returns its update.
// An unknown path yields a nil update.
func (c *Context) Call(path Path, params ...any) Update {
	h, ok := c.methods.Lookup(path)
	if !ok {
		return nil
	}
	return h(c, params...)
}

// SideEffect queues f on the sink of the dispatch context.
// It reports false when no sink is installed, in which case f is dropped.
func (c *Context) SideEffect(f Effect) bool {
	sink, ok := EffectSinkFrom(c)
	if !ok {
		return false
	}
	sink.Push(f)
	return true
}
