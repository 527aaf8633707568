package custody

import (
	"github.com/covault/covault"
	"github.com/covault/covault/coin"
)

// DefaultBudget is the compute ceiling granted to an external call when
// the service was configured without an explicit one.
const DefaultBudget uint64 = 100000

// Call describes the external action attached to an executed proposal.
// The value transfer itself is performed by the engine before the
// invoker runs; the call only carries what the callee may inspect.
type Call struct {
	Destination covault.Address
	Amount      coin.Coin
	Payload     []byte

	// Budget is the compute ceiling granted to the callee. Enforcing it
	// is the invoker's job; the engine only hands it down.
	Budget uint64
}

// Invoker performs the external action of a proposal.
//
// Implementations must treat the callee as untrusted: it may consume up
// to Call.Budget of compute and it may re-enter the service while
// running. A non-nil error reports that the action failed and makes the
// engine roll the proposal back to the executable state.
type Invoker interface {
	Invoke(ctx covault.Context, call Call) error
}

// InvokerFunc makes a plain function usable as an Invoker.
type InvokerFunc func(ctx covault.Context, call Call) error

func (f InvokerFunc) Invoke(ctx covault.Context, call Call) error {
	return f(ctx, call)
}

// noopInvoker accepts every call without doing anything. It is the
// default for vaults that only ever transfer value.
type noopInvoker struct{}

func (noopInvoker) Invoke(covault.Context, Call) error {
	return nil
}
