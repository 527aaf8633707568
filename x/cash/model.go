package cash

import (
	"github.com/covault/covault/coin"
	"github.com/covault/covault/errors"
	"github.com/covault/covault/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Balance is the amount of native value held by a single address.
type Balance struct {
	Amount coin.Coin `json:"amount"`
}

var _ orm.Model = (*Balance)(nil)

// Validate requires a well formed, non negative amount. A zero balance
// is legal, it is what every account starts with.
func (b *Balance) Validate() error {
	if b.Amount.IsZero() && b.Amount.Ticker == "" {
		return nil
	}
	if err := b.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !b.Amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}
