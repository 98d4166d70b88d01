// Package kvstore is the byte-valued key/value storage side effects persist to.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/on-the-ground/action_object_go/config"
)

// ErrRejected is returned when a backend declines to keep a value.
var ErrRejected = errors.New("value rejected by storage")

// Store keeps values by key. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend named by cfg.Backend.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemDB:
		return NewMemDB()
	case config.BackendRistretto:
		return NewRistretto(cfg.CacheSize)
	case config.BackendSQLite:
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

// NopCloser returns s with a Close that does nothing, for sharing one store between owners.
func NopCloser(s Store) Store {
	return nopCloser{s}
}

type nopCloser struct {
	Store
}

func (nopCloser) Close() error { return nil }

// values are copied in and out so that callers may reuse their buffers.
func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return slices.Clone(b)
}
