package custody

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/covault/covault"
	"github.com/covault/covault/covaulttest"
	"github.com/covault/covault/covaulttest/assert"
	"github.com/covault/covault/store"
)

func TestInitFromGenesis(t *testing.T) {
	alice := covaulttest.NewAddress()
	bob := covaulttest.NewAddress()
	raw := fmt.Sprintf(`{"owners": [%q, %q], "threshold": 2}`, alice, bob)
	opts := covault.Options{"custody": json.RawMessage(raw)}

	db := store.MemStore()
	var rec covault.Recorder
	init := Initializer{Emitter: &rec}
	assert.Nil(t, init.FromGenesis(opts, db))

	conf, err := NewConfigBucket().Load(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(conf.Owners))
	assert.Equal(t, true, conf.IsOwner(alice))
	assert.Equal(t, true, conf.IsOwner(bob))
	assert.Equal(t, uint32(2), conf.Threshold)
	assert.Equal(t, 1, len(rec.Events()))
	assert.Equal(t, EventInitialized, rec.Events()[0].Type)

	// The genesis runs once, a second round is refused.
	err = init.FromGenesis(opts, db)
	assert.IsErr(t, ErrInitialized, err)
}

func TestInitFromGenesisRequiresOption(t *testing.T) {
	err := Initializer{}.FromGenesis(covault.Options{}, store.MemStore())
	assert.IsErr(t, ErrInvalidConfiguration, err)
}

func TestInitFromGenesisRejectsBrokenConfiguration(t *testing.T) {
	raw := fmt.Sprintf(`{"owners": [%q], "threshold": 2}`, covaulttest.NewAddress())
	opts := covault.Options{"custody": json.RawMessage(raw)}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, ErrInvalidConfiguration, err)
}
