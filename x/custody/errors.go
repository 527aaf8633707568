package custody

import "github.com/covault/covault/errors"

// Error codes 1100 ~ 1119 are reserved for the custody extension.
var (
	// ErrInvalidConfiguration is returned when the owner set or the
	// initial threshold cannot form a valid vault.
	ErrInvalidConfiguration = errors.Register(1100, "invalid configuration")

	// ErrInvalidThreshold is returned when a threshold amendment is out
	// of the [1, number of owners] range.
	ErrInvalidThreshold = errors.Register(1101, "invalid threshold")

	// ErrInvalidDestination is returned when a proposal destination is
	// missing or malformed.
	ErrInvalidDestination = errors.Register(1102, "invalid destination")

	// ErrAlreadyExecuted is returned when confirming, cancelling or
	// executing a proposal that reached a terminal state.
	ErrAlreadyExecuted = errors.Register(1103, "proposal already executed")

	// ErrAlreadyConfirmed is returned when an owner confirms the same
	// proposal twice.
	ErrAlreadyConfirmed = errors.Register(1104, "proposal already confirmed")

	// ErrInsufficientConfirmations is returned when executing a proposal
	// that has fewer confirmations than the current threshold.
	ErrInsufficientConfirmations = errors.Register(1105, "insufficient confirmations")

	// ErrExecutionFailed is returned when the external call of an
	// executed proposal failed and its state was rolled back.
	ErrExecutionFailed = errors.Register(1106, "external call failed")

	// ErrCancelUnauthorized is returned when cancelling a proposal the
	// caller has never confirmed.
	ErrCancelUnauthorized = errors.Register(1107, "cancellation requires a prior confirmation")

	// ErrInitialized is returned on a second initialization attempt.
	ErrInitialized = errors.Register(1108, "already initialized")

	// ErrNotInitialized is returned when operating on a vault that was
	// never initialized.
	ErrNotInitialized = errors.Register(1109, "not initialized")

	// ErrExecutionInFlight is returned when an execution is attempted
	// while another proposal's external call is still running.
	ErrExecutionInFlight = errors.Register(1110, "execution in progress")
)
