package cork

import (
	"errors"
	"testing"

	"github.com/netmute/ctags-writer/kinds"
	"github.com/netmute/ctags-writer/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorkedAndDepth(t *testing.T) {
	var q Queue
	assert.False(t, q.Corked())

	q.Cork()
	assert.True(t, q.Corked())
	assert.Equal(t, 1, q.Depth())

	q.Cork()
	assert.Equal(t, 2, q.Depth(), "nested Cork calls increase depth")
}

func TestPushPanicsWhenNotCorked(t *testing.T) {
	var q Queue
	assert.Panics(t, func() {
		q.Push(&tags.TagEntry{Name: "x"})
	})
}

func TestPushReturnsStableIndexAndClonesOwnership(t *testing.T) {
	var q Queue
	q.Cork()

	e := &tags.TagEntry{Name: "Foo"}
	idx := q.Push(e)
	assert.Equal(t, 1, idx)

	e.Name = "mutated-after-push"
	stored, ok := q.EntryAt(idx)
	require.True(t, ok)
	assert.Equal(t, "Foo", stored.Name, "Push must deep-copy, not alias, the submitted entry")
}

func TestUncorkFlushesInOrderAndReleases(t *testing.T) {
	var q Queue
	q.Cork()
	q.Push(&tags.TagEntry{Name: "a"})
	q.Push(&tags.TagEntry{Name: "b"})
	q.Push(&tags.TagEntry{Name: "c"})

	var flushed []string
	err := q.Uncork(func(e *tags.TagEntry) error {
		flushed = append(flushed, e.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, flushed)
	assert.False(t, q.Corked())
	assert.Equal(t, 0, q.Count())
}

func TestUncorkNestedOnlyFlushesAtOutermost(t *testing.T) {
	var q Queue
	q.Cork()
	q.Cork()
	q.Push(&tags.TagEntry{Name: "a"})

	flushes := 0
	err := q.Uncork(func(e *tags.TagEntry) error { flushes++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 0, flushes, "inner Uncork must not flush")
	assert.True(t, q.Corked())

	err = q.Uncork(func(e *tags.TagEntry) error { flushes++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, flushes)
}

func TestUncorkStopsOnFirstError(t *testing.T) {
	var q Queue
	q.Cork()
	q.Push(&tags.TagEntry{Name: "a"})
	q.Push(&tags.TagEntry{Name: "b"})

	boom := errors.New("boom")
	var flushed []string
	err := q.Uncork(func(e *tags.TagEntry) error {
		flushed = append(flushed, e.Name)
		if e.Name == "a" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, flushed)
	assert.False(t, q.Corked(), "queue must still release on error")
}

func TestResolveScopesJoinsNestedNames(t *testing.T) {
	var q Queue
	q.Cork()

	outer := &tags.TagEntry{Name: "Foo", Kind: &kinds.Kind{Name: "class"}}
	outerIdx := q.Push(outer)

	inner := &tags.TagEntry{Name: "bar", Kind: &kinds.Kind{Name: "method"}, ScopeIndex: outerIdx}
	q.Push(inner)

	var resolvedScope string
	err := q.Uncork(func(e *tags.TagEntry) error {
		if e.Name == "bar" {
			resolvedScope = e.ScopeName
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Foo", resolvedScope)
}

func TestCountIgnoresSentinel(t *testing.T) {
	var q Queue
	assert.Equal(t, 0, q.Count())
	q.Cork()
	assert.Equal(t, 0, q.Count())
	q.Push(&tags.TagEntry{Name: "a"})
	assert.Equal(t, 1, q.Count())
}
