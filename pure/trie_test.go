package pure_test

import (
	"testing"

	"github.com/on-the-ground/action_object_go/pure"
	"github.com/stretchr/testify/assert"
)

func TestTrie_BasicUsage(t *testing.T) {
	trie := pure.NewTrie[string](4)

	trie.Store([]pure.ComparableOrString{"a", "b", "c"}, "final")

	val, ok := trie.Load([]pure.ComparableOrString{"a", "b", "c"})
	assert.True(t, ok)
	assert.Equal(t, "final", val)

	// wrong key path
	_, ok = trie.Load([]pure.ComparableOrString{"a", "b", "x"})
	assert.False(t, ok)

	// overwrite existing
	trie.Store([]pure.ComparableOrString{"a", "b", "c"}, "updated")
	val, ok = trie.Load([]pure.ComparableOrString{"a", "b", "c"})
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestTrie_RotationEvictsOldestGeneration(t *testing.T) {
	trie := pure.NewTrie[int](1)
	key := func(s string) []pure.ComparableOrString { return []pure.ComparableOrString{s} }

	trie.Store(key("a"), 1)
	trie.Store(key("b"), 2)

	// a survives in the previous generation
	v, ok := trie.Load(key("a"))
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	trie.Store(key("c"), 3)

	_, ok = trie.Load(key("a"))
	assert.False(t, ok)
	v, ok = trie.Load(key("b"))
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok = trie.Load(key("c"))
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestTrie_EmptyKeysPanics(t *testing.T) {
	trie := pure.NewTrie[int](2)
	assert.Panics(t, func() { trie.Load([]pure.ComparableOrString{}) })
	assert.Panics(t, func() { trie.Store(nil, 1) })
}

func TestNewTrie_ZeroSizePanics(t *testing.T) {
	assert.Panics(t, func() { pure.NewTrie[int](0) })
}
