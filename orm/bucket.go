package orm

import (
	"fmt"
	"regexp"

	"github.com/fxamacker/cbor/v2"

	"github.com/covault/covault"
	"github.com/covault/covault/errors"
)

// Model is implemented by any entity that can be persisted in a Bucket.
type Model interface {
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// enc is the encoding mode used to serialize all models. Deterministic
// encoding keeps the stored bytes canonical, so the same model always
// produces the same value.
var enc cbor.EncMode

func init() {
	var err error
	enc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Bucket is a generic holder that stores models of one kind under a
// common key prefix. All keys are transparently prefixed so that many
// buckets can share one KVStore without collisions.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket with the given name. The name must be a
// short lowercase identifier; anything else is a programmer error and
// panics.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	return append(b.prefix, key...)
}

// Has returns true if the given key is present in the bucket.
func (b Bucket) Has(db covault.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// One loads the model stored under the given key into dest. It returns
// an ErrNotFound wrapped error if no value is stored under the key.
func (b Bucket) One(db covault.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := cbor.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s: %s", b.name, err)
	}
	return nil
}

// Put validates the model and stores it under the given key, replacing
// any previous value.
func (b Bucket) Put(db covault.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := enc.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %s: %s", b.name, err)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes the value stored under the given key. Deleting an
// absent key is a noop.
func (b Bucket) Delete(db covault.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
