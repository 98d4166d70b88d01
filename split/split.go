// Package split turns a model.Model into a reducer and a matching tree of action creators.
package split

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/action_object_go/model"
)

// ErrCyclicModel is returned when a model contains itself through sub-models or its base chain.
var ErrCyclicModel = errors.New("cyclic model")

// Creators mirrors the model tree: leaves are model.ActionCreator, nested models are Creators.
type Creators map[string]any

// Lookup resolves a dotted path to an action creator.
func (c Creators) Lookup(path model.Path) (model.ActionCreator, bool) {
	var cur any = c
	for _, seg := range path.Segments() {
		nested, ok := cur.(Creators)
		if !ok {
			return nil, false
		}
		if cur, ok = nested[seg]; !ok {
			return nil, false
		}
	}
	fn, ok := cur.(model.ActionCreator)
	return fn, ok && fn != nil
}

// Parts holds the three parallel trees produced by SplitObject. They share keys:
// every handler member has an entry in Creators and Methods, every leaf member
// an entry in InitialState, and every sub-model an entry in all three.
type Parts struct {
	Creators     Creators
	InitialState model.State
	Methods      model.MethodTable
}

func (p Parts) orFresh() Parts {
	if p.Creators == nil {
		p.Creators = make(Creators)
	}
	if p.InitialState == nil {
		p.InitialState = make(model.State)
	}
	if p.Methods == nil {
		p.Methods = make(model.MethodTable)
	}
	return p
}

func (p Parts) has(key string) bool {
	if _, ok := p.Creators[key]; ok {
		return true
	}
	if _, ok := p.InitialState[key]; ok {
		return true
	}
	_, ok := p.Methods[key]
	return ok
}

// SplitObject classifies the members of m into acc, prefixing action types with prefix.
// Own members are processed first, then the base chain with the same prefix and
// accumulators; a key already registered is not overwritten by a base member.
// Zero-valued accumulators are allocated.
func SplitObject(m *model.Model, prefix model.Path, acc Parts) (Parts, error) {
	return splitObject(m, prefix, acc.orFresh(), make(map[*model.Model]bool))
}

func splitObject(m *model.Model, prefix model.Path, acc Parts, visiting map[*model.Model]bool) (Parts, error) {
	if visiting[m] {
		return acc, fmt.Errorf("%w: at %q", ErrCyclicModel, prefix)
	}
	visiting[m] = true
	defer delete(visiting, m)

	for _, key := range m.Keys() {
		if acc.has(key) {
			continue
		}
		member, _ := m.Get(key)
		switch member.Kind() {
		case model.KindHandler, model.KindCreator:
			if member.IsCreator() {
				acc.Creators[key] = member.ActionCreator()
			} else {
				acc.Creators[key] = actionCreatorFor(prefix.Child(key))
			}
			if h := member.Handler(); h != nil {
				acc.Methods[key] = h
			}
		case model.KindSub:
			nested, err := splitObject(member.Model(), prefix.Child(key), Parts{}.orFresh(), visiting)
			if err != nil {
				return acc, err
			}
			acc.Creators[key] = nested.Creators
			acc.InitialState[key] = nested.InitialState
			acc.Methods[key] = nested.Methods
		default:
			acc.InitialState[key] = member.Value()
		}
	}

	if base := m.Base(); base != nil {
		return splitObject(base, prefix, acc, visiting)
	}
	return acc, nil
}

// actionCreatorFor synthesizes the generic creator of a handler.
func actionCreatorFor(typ model.Path) model.ActionCreator {
	return func(params ...any) any {
		return model.Action{Type: typ, Params: params}
	}
}
