package model

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrSealed is the panic value when a sealed model is modified.
var ErrSealed = errors.New("model is sealed")

// Member is one named entry of a Model.
type Member struct {
	kind    Kind
	value   any
	handler Handler
	creator ActionCreator
	sub     *Model
}

// Data wraps a plain state value.
func Data(v any) Member { return Member{kind: KindData, value: v} }

// List wraps a slice or array state value.
func List(v any) Member { return Member{kind: KindList, value: v} }

// Opaque wraps a container the splitter must treat as a single state value.
func Opaque(v any) Member { return Member{kind: KindOpaque, value: v} }

// Handle wraps an action implementation.
func Handle(h Handler) Member { return Member{kind: KindHandler, handler: h} }

// Sub wraps a nested model.
func Sub(m *Model) Member { return Member{kind: KindSub, sub: m} }

// Creator marks fn as a self-sufficient action creator: the splitter uses it as
// is instead of synthesizing an Action{Type, Params} factory. Actions dispatched
// to the member's own path are no-ops unless a handler is attached with CreatorFor.
func Creator(fn ActionCreator) Member {
	return Member{kind: KindCreator, creator: fn}
}

// CreatorFor is Creator with a handler for actions dispatched to the member's path.
func CreatorFor(fn ActionCreator, h Handler) Member {
	return Member{kind: KindCreator, creator: fn, handler: h}
}

func (m Member) Kind() Kind { return m.kind }

// Value returns the state value of a leaf member.
func (m Member) Value() any { return m.value }

// Handler returns the action implementation, nil if the member has none.
func (m Member) Handler() Handler { return m.handler }

// ActionCreator returns the custom creator of a creator member.
func (m Member) ActionCreator() ActionCreator { return m.creator }

// Model returns the nested model of a sub member.
func (m Member) Model() *Model { return m.sub }

// IsCreator reports whether the member was marked with Creator.
func (m Member) IsCreator() bool { return m.kind == KindCreator && m.creator != nil }

// Model is a declarative registration of state fields, actions and sub-models.
type Model struct {
	members  map[string]Member
	order    []string
	base     *Model
	classify Classifier
	sealed   bool
}

// New returns an empty model using DefaultClassifier.
func New() *Model {
	return &Model{
		members:  make(map[string]Member),
		classify: DefaultClassifier,
	}
}

// FromMap builds a model from a plain map, classifying each value with DefaultClassifier.
// Keys are registered in sorted order.
func FromMap(fields map[string]any) *Model {
	m := New()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Set(k, fields[k])
	}
	return m
}

// WithClassifier replaces the policy used by subsequent Set calls.
func (m *Model) WithClassifier(c Classifier) *Model {
	m.mustBeOpen()
	if c == nil {
		c = DefaultClassifier
	}
	m.classify = c
	return m
}

// Set registers v under name after classifying it.
// Registering a name twice replaces the member but keeps its original position.
func (m *Model) Set(name string, v any) *Model {
	return m.put(name, m.classify(v))
}

// Action registers an action implementation.
func (m *Model) Action(name string, h Handler) *Model {
	return m.put(name, Handle(h))
}

// Creator registers a custom action creator.
func (m *Model) Creator(name string, fn ActionCreator) *Model {
	return m.put(name, Creator(fn))
}

// Sub registers a nested model.
func (m *Model) Sub(name string, sub *Model) *Model {
	return m.put(name, Sub(sub))
}

// Extends sets the base model whose members are inherited.
func (m *Model) Extends(base *Model) *Model {
	m.mustBeOpen()
	m.base = base
	return m
}

func (m *Model) put(name string, member Member) *Model {
	m.mustBeOpen()
	if member.kind == KindSub && member.sub == nil {
		member = Data(nil)
	}
	if _, ok := m.members[name]; !ok {
		m.order = append(m.order, name)
	}
	m.members[name] = member
	return m
}

// Base returns the model m extends, or nil.
func (m *Model) Base() *Model { return m.base }

// Keys returns the own member names in registration order.
func (m *Model) Keys() []string { return slices.Clone(m.order) }

// Get returns an own member.
func (m *Model) Get(name string) (Member, bool) {
	member, ok := m.members[name]
	return member, ok
}

// Lookup returns the member visible under name: an own member first, then the base chain.
func (m *Model) Lookup(name string) (Member, bool) {
	seen := make(map[*Model]bool)
	for cur := m; cur != nil && !seen[cur]; cur = cur.base {
		seen[cur] = true
		if member, ok := cur.members[name]; ok {
			return member, true
		}
	}
	return Member{}, false
}

// Seal freezes m, its sub-models and its base chain.
func (m *Model) Seal() {
	m.seal(make(map[*Model]bool))
}

func (m *Model) seal(seen map[*Model]bool) {
	if m == nil || seen[m] {
		return
	}
	seen[m] = true
	m.sealed = true
	for _, member := range m.members {
		if member.kind == KindSub {
			member.sub.seal(seen)
		}
	}
	m.base.seal(seen)
}

// Sealed reports whether m can no longer be modified.
func (m *Model) Sealed() bool { return m.sealed }

func (m *Model) mustBeOpen() {
	if m.sealed {
		panic(fmt.Errorf("%w: register members before splitting", ErrSealed))
	}
}
