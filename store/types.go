package store

import "github.com/covault/covault"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = covault.ReadOnlyKVStore
type KVStore = covault.KVStore
type CacheableKVStore = covault.CacheableKVStore
type KVCacheWrap = covault.KVCacheWrap

// SetDeleter is the subset of KVStore a batch flushes into.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Batch can write multiple ops to an underlying store at once.
type Batch interface {
	SetDeleter
	Write() error
}
