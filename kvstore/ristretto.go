package kvstore

import (
	"context"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

// Ristretto keeps values in a bounded ristretto cache, costed by value length.
// Values may be evicted under pressure, so a Get after a Set can miss.
type Ristretto struct {
	cache *ristretto.Cache[string, []byte]
}

// NewRistretto creates a cache holding at most maxCost bytes of values.
func NewRistretto(maxCost int64) (*Ristretto, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        1e5,     // number of keys to track frequency of.
		MaxCost:            maxCost, // total value bytes.
		BufferItems:        64,      // number of keys per Get buffer.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{cache: cache}, nil
}

func (r *Ristretto) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Set stores value and waits until it is visible to Get.
func (r *Ristretto) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cost := max(int64(len(value)), 1)
	if !r.cache.Set(key, clone(value), cost) {
		return ErrRejected
	}
	r.cache.Wait()
	return nil
}

func (r *Ristretto) Close() error {
	r.cache.Close()
	return nil
}
