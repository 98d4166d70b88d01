// Package store hosts split reducers behind the conventional dispatch, subscribe
// and getState primitives, with enhancers wrapping store creation.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/split"
)

var (
	// ErrNotAnAction is returned when Dispatch receives something other than a model.Action.
	ErrNotAnAction = errors.New("dispatched value is not an action")
	// ErrReducerDispatch is returned when a handler dispatches to the store that is running it.
	ErrReducerDispatch = errors.New("reducers may not dispatch actions")
)

// InitAction is reduced once when a store is created.
const InitAction model.Path = "@@store/INIT"

// Listener is notified after every dispatch with the dispatch context.
type Listener func(ctx context.Context)

// Store holds one state and serializes the reducer over it.
type Store interface {
	ID() uuid.UUID
	Dispatch(ctx context.Context, action any) (any, error)
	Subscribe(l Listener) (unsubscribe func())
	GetState() model.State
}

// CreateFunc builds a store from a reducer and an optional preloaded state.
type CreateFunc func(reducer split.Reducer, initial model.State) Store

// Enhancer wraps store creation.
type Enhancer func(next CreateFunc) CreateFunc

// Compose chains enhancers so that the first one listed is the outermost.
func Compose(enhancers ...Enhancer) Enhancer {
	return func(next CreateFunc) CreateFunc {
		for i := len(enhancers) - 1; i >= 0; i-- {
			if enhancers[i] != nil {
				next = enhancers[i](next)
			}
		}
		return next
	}
}

// New creates a store, applying enhancers in Compose order.
func New(reducer split.Reducer, initial model.State, enhancers ...Enhancer) Store {
	return Compose(enhancers...)(create)(reducer, initial)
}

type subscription struct {
	id       uint64
	listener Listener
}

type basicStore struct {
	id      uuid.UUID
	reducer split.Reducer

	mu          sync.Mutex
	state       model.State
	dispatching bool
	listeners   []subscription
	nextSubID   uint64
}

type reducingKey struct{ id uuid.UUID }

func create(reducer split.Reducer, initial model.State) Store {
	s := &basicStore{
		id:      uuid.New(),
		reducer: reducer,
	}
	s.state = reducer(s.reducing(context.Background()), initial, model.NewAction(InitAction))
	return s
}

func (s *basicStore) reducing(ctx context.Context) context.Context {
	return context.WithValue(ctx, reducingKey{s.id}, struct{}{})
}

func (s *basicStore) ID() uuid.UUID { return s.id }

func (s *basicStore) GetState() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces action over the current state and then notifies listeners
// outside the lock, in subscription order. It returns the action.
//
// The reducer runs without the lock held. A Dispatch that arrives while it runs
// is rejected with ErrReducerDispatch, whatever context it carries.
func (s *basicStore) Dispatch(ctx context.Context, action any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a, ok := action.(model.Action)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAnAction, action)
	}
	if ctx.Value(reducingKey{s.id}) != nil {
		return nil, fmt.Errorf("%w: %s from reducer context", ErrReducerDispatch, a.Type)
	}

	listeners, err := s.reduce(ctx, a)
	if err != nil {
		return nil, err
	}
	for _, sub := range listeners {
		sub.listener(ctx)
	}
	return a, nil
}

// reduce runs the reducer between begin and commit. commit is deferred so a
// panicking handler leaves the state untouched and the store usable.
func (s *basicStore) reduce(ctx context.Context, a model.Action) (listeners []subscription, err error) {
	state, err := s.begin(a)
	if err != nil {
		return nil, err
	}
	next := state
	defer func() { listeners = s.commit(next) }()
	next = s.reducer(s.reducing(ctx), state, a)
	return listeners, nil
}

func (s *basicStore) begin(a model.Action) (model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dispatching {
		return nil, fmt.Errorf("%w: %s", ErrReducerDispatch, a.Type)
	}
	s.dispatching = true
	return s.state, nil
}

func (s *basicStore) commit(next model.State) []subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatching = false
	s.state = next
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	return listeners
}

// Subscribe registers l. The returned func removes it and is safe to call twice.
func (s *basicStore) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
