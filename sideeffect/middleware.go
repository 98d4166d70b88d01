package sideeffect

import (
	"context"

	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/split"
	"github.com/on-the-ground/action_object_go/store"
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
}

// Option configures NewEnhancer.
type Option func(*options)

// WithLogger sets the logger used for drained and failed effects.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSideEffects is the enhancer built by NewEnhancer with default options.
func WithSideEffects(next store.CreateFunc) store.CreateFunc {
	return NewEnhancer()(next)
}

// NewEnhancer returns an enhancer giving each created store its own Queue.
//
// Dispatch installs the queue into the dispatch context so that handlers can
// reach it through model.Context.SideEffect or Push. After every dispatch the
// queue is drained: everything queued so far runs against one snapshot of the
// new state, in queue order. Effects queued while draining run on the next
// notification. A panicking effect is logged and the rest still run.
func NewEnhancer(opts ...Option) store.Enhancer {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next store.CreateFunc) store.CreateFunc {
		return func(reducer split.Reducer, initial model.State) store.Store {
			s := &effectStore{
				Store: next(reducer, initial),
				queue: NewQueue(),
			}
			s.logger = o.logger.With(
				zap.Stringer("store", s.ID()),
				zap.Stringer("queue", s.queue.ID()),
			)
			s.Subscribe(s.drain)
			return s
		}
	}
}

type effectStore struct {
	store.Store
	queue  *Queue
	logger *zap.Logger
}

func (s *effectStore) Dispatch(ctx context.Context, action any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.Store.Dispatch(model.WithEffectSink(ctx, s.queue), action)
}

func (s *effectStore) drain(ctx context.Context) {
	effects := s.queue.Take()
	if len(effects) == 0 {
		return
	}
	snapshot := s.GetState().Clone()
	s.logger.Debug("running side effects", zap.Int("count", len(effects)))
	for i, f := range effects {
		s.run(ctx, i, f, snapshot)
	}
}

func (s *effectStore) run(ctx context.Context, i int, f model.Effect, snapshot model.State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("side effect panicked",
				zap.Int("index", i),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()
	f(ctx, snapshot, s.Dispatch)
}
