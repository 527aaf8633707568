package cash

import "github.com/covault/covault/errors"

// Error codes 1200 ~ 1209 are reserved for the cash extension.
var (
	// ErrInsufficientFunds is returned when a transfer or a proposal
	// asks for more value than the source account holds.
	ErrInsufficientFunds = errors.Register(1200, "insufficient funds")
)
