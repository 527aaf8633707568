package custody

import (
	"github.com/covault/covault"
	"github.com/covault/covault/errors"
)

// GenesisConfig is the "custody" genesis option.
type GenesisConfig struct {
	Owners    []covault.Address `json:"owners"`
	Threshold uint32            `json:"threshold"`
}

// Initializer fulfils the covault.Initializer interface to load the
// vault configuration from genesis file contents.
type Initializer struct {
	// Emitter receives the initialization record. Optional.
	Emitter covault.Emitter
}

var _ covault.Initializer = (*Initializer)(nil)

// FromGenesis will parse the owner set and threshold from the genesis
// and write them to the database. A missing "custody" option is an
// error: a vault without owners is useless.
func (i Initializer) FromGenesis(opts covault.Options, db covault.KVStore) error {
	var gen *GenesisConfig
	if err := opts.ReadOptions("custody", &gen); err != nil {
		return errors.Wrap(err, "cannot load custody genesis")
	}
	if gen == nil {
		return errors.Wrap(ErrInvalidConfiguration, "no custody genesis option")
	}
	emitter := i.Emitter
	if emitter == nil {
		emitter = covault.NopEmitter{}
	}
	conf := Config{Owners: gen.Owners, Threshold: gen.Threshold}
	return initConfig(db, &conf, emitter)
}
