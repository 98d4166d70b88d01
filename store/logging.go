package store

import (
	"context"
	"time"

	"github.com/on-the-ground/action_object_go/internal/timespan"
	"github.com/on-the-ground/action_object_go/model"
	"github.com/on-the-ground/action_object_go/split"
	"go.uber.org/zap"
)

type loggingStore struct {
	Store
	logger *zap.Logger
}

// WithLogging logs every dispatch at debug level and failed dispatches at warn level.
func WithLogging(logger *zap.Logger) Enhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next CreateFunc) CreateFunc {
		return func(reducer split.Reducer, initial model.State) Store {
			inner := next(reducer, initial)
			return &loggingStore{
				Store:  inner,
				logger: logger.With(zap.Stringer("store", inner.ID())),
			}
		}
	}
}

func (s *loggingStore) Dispatch(ctx context.Context, action any) (any, error) {
	before := s.GetState()
	start := time.Now()
	res, err := s.Store.Dispatch(ctx, action)
	span := timespan.Since(start)
	if err != nil {
		s.logger.Warn("dispatch failed", zap.Any("action", action), zap.Error(err))
		return res, err
	}

	var typ model.Path
	if a, ok := action.(model.Action); ok {
		typ = a.Type
	}
	s.logger.Debug("dispatch",
		zap.Stringer("type", typ),
		zap.Bool("changed", !model.Same(before, s.GetState())),
		zap.Duration("duration", span.Duration()),
	)
	return res, nil
}
