package pure

import (
	"sync"
	"sync/atomic"
)

// Trie is a bounded memo table keyed by a sequence of comparable keys.
// It keeps two generations of maps: when the head generation is full, the
// other generation is cleared and becomes the head, so lookups still hit
// the most recent maxSize entries.
type Trie[O any] struct {
	mu      sync.Mutex
	memos   [2]*sync.Map
	headIdx atomic.Uint32
	size    atomic.Uint32
	maxSize uint32
}

// NewTrie returns a trie holding up to maxSize entries per generation.
func NewTrie[O any](maxSize uint32) *Trie[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	return &Trie[O]{
		memos:   [2]*sync.Map{{}, {}},
		maxSize: maxSize,
	}
}

// Load looks keys up in the head generation, then in the previous one.
func (t *Trie[O]) Load(keys []ComparableOrString) (O, bool) {
	if len(keys) == 0 {
		panic("trie: empty keys")
	}
	headIdx := t.headIdx.Load()
	for _, idx := range []uint32{headIdx, 1 - headIdx} {
		if v, ok := lookup(t.generation(idx), keys); ok {
			return v.(O), true
		}
	}
	var zero O
	return zero, false
}

// Store records value under keys in the head generation.
func (t *Trie[O]) Store(keys []ComparableOrString, value O) {
	if len(keys) == 0 {
		panic("trie: empty keys")
	}
	if t.size.Add(1) > t.maxSize {
		t.rotate()
	}
	m, k := traverse(t.generation(t.headIdx.Load()), keys)
	m.Store(k, value)
}

func (t *Trie[O]) generation(idx uint32) *sync.Map {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.memos[idx]
}

func (t *Trie[O]) rotate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.size.Load() <= t.maxSize {
		return
	}
	next := 1 - t.headIdx.Load()
	t.memos[next] = &sync.Map{}
	t.headIdx.Store(next)
	t.size.Store(1)
}

func lookup(m *sync.Map, keys []ComparableOrString) (any, bool) {
	last := len(keys) - 1
	for _, k := range keys[:last] {
		v, ok := m.Load(k)
		if !ok {
			return nil, false
		}
		m = v.(*sync.Map)
	}
	return m.Load(keys[last])
}

func traverse(m *sync.Map, keys []ComparableOrString) (*sync.Map, any) {
	last := len(keys) - 1
	for _, k := range keys[:last] {
		v, _ := m.LoadOrStore(k, &sync.Map{})
		m = v.(*sync.Map)
	}
	return m, keys[last]
}
