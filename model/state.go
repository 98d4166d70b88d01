package model

import (
	"maps"
	"reflect"
)

// State is the plain nested mapping mirroring the data members of a model.
// A state is never mutated once published; reducers return a new one instead.
type State map[string]any

// Update is the partial state returned by a handler. nil or empty means no change.
type Update map[string]any

// Same reports whether a and b are the same state object, not merely equal ones.
func Same(a, b State) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}

// Clone returns a shallow copy of s. The copy is never nil.
func (s State) Clone() State {
	out := make(State, len(s))
	maps.Copy(out, s)
	return out
}

// Merge returns s itself when u is empty, otherwise a new state holding s with u applied on top.
func (s State) Merge(u Update) State {
	if len(u) == 0 {
		return s
	}
	out := make(State, len(s)+len(u))
	maps.Copy(out, s)
	maps.Copy(out, u)
	return out
}

// At looks path up in the nested state.
func (s State) At(path Path) (any, bool) {
	var cur any = s
	for _, seg := range path.Segments() {
		var next map[string]any
		switch node := cur.(type) {
		case State:
			next = node
		case map[string]any:
			next = node
		default:
			return nil, false
		}
		v, ok := next[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}
