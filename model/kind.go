package model

import "reflect"

// Kind tags what a member is. It is decided when the member is registered.
type Kind int

const (
	// KindData is a plain value copied into the initial state.
	KindData Kind = iota
	// KindList is a slice or array. It is state, never recursed into.
	KindList
	// KindOpaque is a container the splitter must not look into (see Lister).
	KindOpaque
	// KindSub is a nested model.
	KindSub
	// KindHandler is an action implementation.
	KindHandler
	// KindCreator is an action implementation that brings its own action creator.
	KindCreator
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindList:
		return "list"
	case KindOpaque:
		return "opaque"
	case KindSub:
		return "sub"
	case KindHandler:
		return "handler"
	case KindCreator:
		return "creator"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether members of this kind end up in the initial state.
func (k Kind) IsLeaf() bool {
	return k == KindData || k == KindList || k == KindOpaque
}

// Lister marks immutable collections that expose their contents as a list.
// Values implementing it are classified as KindOpaque.
type Lister interface {
	ToList() []any
}

// Classifier turns a raw value passed to Model.Set into a Member.
type Classifier func(v any) Member

// DefaultClassifier is the leaf-detection policy used unless a Model is given another one.
//
//   - Member values are kept as they are,
//   - *Model and map[string]any become sub-models,
//   - Handler values (and handler-shaped func literals) become handlers,
//   - Lister values become opaque leaves,
//   - slices and arrays become list leaves,
//   - anything else, nil included, is data.
func DefaultClassifier(v any) Member {
	switch x := v.(type) {
	case Member:
		return x
	case *Model:
		return Sub(x)
	case map[string]any:
		return Sub(FromMap(x))
	case Handler:
		return Handle(x)
	case func(*Context, ...any) Update:
		return Handle(x)
	case Lister:
		return Opaque(x)
	}
	if v != nil {
		switch reflect.TypeOf(v).Kind() {
		case reflect.Slice, reflect.Array:
			return List(v)
		}
	}
	return Data(v)
}
