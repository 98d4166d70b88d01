// Package pure memoizes pure functions.
//
// Tableize assumes referential transparency: the wrapped function must return the
// same outputs for the same inputs and have no side effects. Inputs are used as
// table keys, so they must be comparable or implement fmt.Stringer.
package pure

import (
	"fmt"
)

type ComparableOrStringer any
type ComparableOrString any

// TableizeI1O1 memoizes a one-input, one-output pure function.
func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	maxTableSize uint32,
) func(I1) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1))
		},
		maxTableSize,
	)
	return func(i1 I1) O1 {
		return tableized(i1)
	}
}

// TableizeI1O2 memoizes a one-input, two-output pure function, e.g. a comma-ok lookup.
func TableizeI1O2[I1 ComparableOrStringer, O1, O2 any](
	pureFn func(I1) (O1, O2),
	maxTableSize uint32,
) func(I1) (O1, O2) {
	tableized := tableize(
		func(args ...ComparableOrStringer) result[O1, O2] {
			o1, o2 := pureFn(args[0].(I1))
			return result[O1, O2]{O1: o1, O2: o2}
		},
		maxTableSize,
	)
	return func(i1 I1) (O1, O2) {
		res := tableized(i1)
		return res.O1, res.O2
	}
}

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

func tableKey(i ComparableOrStringer) ComparableOrString {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}

func tableize[O any](
	pureFn func(...ComparableOrStringer) O,
	maxTableSize uint32,
) func(...ComparableOrStringer) O {
	memo := NewTrie[O](maxTableSize)
	return func(args ...ComparableOrStringer) O {
		keys := make([]ComparableOrString, len(args))
		for i, arg := range args {
			keys[i] = tableKey(arg)
		}
		v, ok := memo.Load(keys)
		if !ok {
			v = pureFn(args...)
			memo.Store(keys, v)
		}
		return v
	}
}
