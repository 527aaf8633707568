package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("proposal:1"), []byte("payload")

	has, err := db.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.Set(k, v))

	got, err := db.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	has, err = db.Has(k)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete(k))
	got, err = db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWrapWrite(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))

	cache := db.CacheWrap()

	// Writes are visible through the cache but not the parent.
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	got, err := cache.Get(b("b"))
	require.NoError(t, err)
	assert.Equal(t, b("2"), got)

	got, err = db.Get(b("b"))
	require.NoError(t, err)
	assert.Nil(t, got)

	// Parent state reads through.
	got, err = cache.Get(b("a"))
	require.NoError(t, err)
	assert.Equal(t, b("1"), got)

	// Write flushes into the parent.
	require.NoError(t, cache.Write())
	got, err = db.Get(b("b"))
	require.NoError(t, err)
	assert.Equal(t, b("2"), got)
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set(b("a"), b("1")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set(b("b"), b("2")))
	require.NoError(t, cache.Delete(b("a")))

	// Delete shadows the parent value within the cache.
	got, err := cache.Get(b("a"))
	require.NoError(t, err)
	assert.Nil(t, got)

	cache.Discard()

	got, err = db.Get(b("a"))
	require.NoError(t, err)
	assert.Equal(t, b("1"), got)

	got, err = db.Get(b("b"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWrapNested(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set(b("k"), b("v")))
	require.NoError(t, inner.Write())

	// Inner flushed into outer, not yet into the root store.
	got, err := outer.Get(b("k"))
	require.NoError(t, err)
	assert.Equal(t, b("v"), got)

	got, err = db.Get(b("k"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, outer.Write())
	got, err = db.Get(b("k"))
	require.NoError(t, err)
	assert.Equal(t, b("v"), got)
}

func b(s string) []byte {
	return []byte(s)
}
