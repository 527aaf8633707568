package orm

import (
	"bytes"
	"testing"

	"github.com/covault/covault/errors"
	"github.com/covault/covault/store"
)

type counter struct {
	Count int64 `json:"count"`
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func TestBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	if err := b.Put(db, []byte("a"), &counter{Count: 5}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}

	var got counter
	if err := b.One(db, []byte("a"), &got); err != nil {
		t.Fatalf("cannot load: %+v", err)
	}
	if got.Count != 5 {
		t.Fatalf("want 5, got %d", got.Count)
	}
}

func TestBucketMissingKey(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	var got counter
	if err := b.One(db, []byte("missing"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	if err := b.Put(db, []byte("a"), &counter{Count: -1}); !errors.ErrModel.Is(err) {
		t.Fatalf("want model error, got %+v", err)
	}
	if ok, _ := b.Has(db, []byte("a")); ok {
		t.Fatal("failed put must not persist anything")
	}
}

func TestBucketPrefixIsolation(t *testing.T) {
	db := store.MemStore()
	first := NewBucket("first")
	second := NewBucket("second")

	if err := first.Put(db, []byte("k"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}
	if ok, _ := second.Has(db, []byte("k")); ok {
		t.Fatal("buckets must not share keys")
	}
}

func TestBucketNamePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	NewBucket("Not A Name")
}

func TestSequenceMonotonic(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnts", "id")

	if latest, _ := s.Latest(db); latest != 0 {
		t.Fatalf("fresh sequence must be zero, got %d", latest)
	}

	for i := int64(1); i <= 5; i++ {
		val, err := s.NextInt(db)
		if err != nil {
			t.Fatalf("cannot increment: %+v", err)
		}
		if val != i {
			t.Fatalf("want %d, got %d", i, val)
		}
	}
	if latest, _ := s.Latest(db); latest != 5 {
		t.Fatalf("want 5, got %d", latest)
	}

	var prev []byte
	for i := 0; i < 5; i++ {
		bz, err := s.NextVal(db)
		if err != nil {
			t.Fatalf("cannot increment: %+v", err)
		}
		if prev != nil && bytes.Compare(prev, bz) >= 0 {
			t.Fatal("sequence keys must be strictly increasing")
		}
		prev = bz
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("cnts", "a")
	b := NewSequence("cnts", "b")

	if _, err := a.NextInt(db); err != nil {
		t.Fatalf("cannot increment: %+v", err)
	}
	if latest, _ := b.Latest(db); latest != 0 {
		t.Fatalf("sequences must not share state, got %d", latest)
	}
}
