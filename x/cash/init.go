package cash

import (
	"github.com/covault/covault"
	"github.com/covault/covault/coin"
	"github.com/covault/covault/errors"
)

// GenesisAccount is a single entry of the "cash" genesis option.
type GenesisAccount struct {
	Address covault.Address `json:"address"`
	Amount  coin.Coin       `json:"amount"`
}

// Initializer fulfils the covault.Initializer interface to credit
// accounts from genesis file contents.
type Initializer struct{}

var _ covault.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account balances from the genesis and
// credit them in the database.
func (Initializer) FromGenesis(opts covault.Options, db covault.KVStore) error {
	accounts := []GenesisAccount{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "cannot load cash genesis")
	}
	ctrl := NewController()
	for i, a := range accounts {
		if err := ctrl.Deposit(db, a.Address, a.Amount); err != nil {
			return errors.Wrapf(err, "account #%d (%s)", i, a.Address)
		}
	}
	return nil
}
