// Package sideeffect lets handlers queue effects that run after the state commit,
// with the committed state and the dispatch function of the store.
package sideeffect

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/on-the-ground/action_object_go/model"
	"go.uber.org/zap"
)

// Queue holds the effects queued for one store.
type Queue struct {
	id uuid.UUID

	mu      sync.Mutex
	effects []model.Effect
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{id: uuid.New()}
}

// ID identifies the queue in logs.
func (q *Queue) ID() uuid.UUID { return q.id }

// Push appends f. A nil f is ignored.
func (q *Queue) Push(f model.Effect) {
	if f == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.effects = append(q.effects, f)
}

// Take removes and returns everything queued so far.
func (q *Queue) Take() []model.Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	taken := q.effects
	q.effects = nil
	return taken
}

// Len returns the number of queued effects.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.effects)
}

// Push queues f on the queue installed in ctx by a store created with WithSideEffects.
// Without one f is dropped, logged at debug on the global logger, and Push reports false.
func Push(ctx context.Context, f model.Effect) bool {
	sink, ok := model.EffectSinkFrom(ctx)
	if !ok {
		zap.L().Debug("side effect dropped: no queue in context")
		return false
	}
	sink.Push(f)
	return true
}
