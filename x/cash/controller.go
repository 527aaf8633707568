package cash

import (
	"github.com/covault/covault"
	"github.com/covault/covault/coin"
	"github.com/covault/covault/errors"
	"github.com/covault/covault/orm"
)

// Controller provides the balance keeping functionality. It is safe to
// create one per use, all state lives in the KVStore.
type Controller struct {
	bucket orm.Bucket
}

// NewController returns a controller over the default cash bucket.
func NewController() Controller {
	return Controller{bucket: orm.NewBucket(BucketName)}
}

// Balance returns the amount held by the given address. An address that
// was never credited holds a zero coin.
func (c Controller) Balance(db covault.ReadOnlyKVStore, addr covault.Address) (coin.Coin, error) {
	if err := addr.Validate(); err != nil {
		return coin.Coin{}, errors.Wrap(err, "address")
	}
	var b Balance
	switch err := c.bucket.One(db, addr, &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return coin.Coin{}, nil
	default:
		return coin.Coin{}, err
	}
}

// Deposit adds the given amount to the destination account, creating it
// if necessary. This is how unsolicited value enters the store.
func (c Controller) Deposit(db covault.KVStore, dest covault.Address, amount coin.Coin) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive deposit: %s", amount)
	}
	held, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := held.Add(amount)
	if err != nil {
		return err
	}
	return c.bucket.Put(db, dest, &Balance{Amount: total})
}

// Move transfers the given amount from src to dest. If src doesn't hold
// sufficient value, it fails with ErrInsufficientFunds and no account is
// modified. Both accounts are written before returning, so a failure in
// either write leaves the pair untouched only when the caller runs the
// move inside a cache-wrap.
func (c Controller) Move(db covault.KVStore, src, dest covault.Address, amount coin.Coin) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}

	sender, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if !sender.IsGTE(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "%s holds %s, needs %s", src, sender, amount)
	}

	remaining, err := sender.Subtract(amount)
	if err != nil {
		return err
	}
	recipient, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := recipient.Add(amount)
	if err != nil {
		return err
	}

	if err := c.bucket.Put(db, src, &Balance{Amount: remaining}); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, &Balance{Amount: total})
}
