package custody

import (
	"github.com/covault/covault"
	"github.com/covault/covault/errors"
)

// Execute performs the external action of a sufficiently confirmed
// proposal, exactly once.
//
// The proposal is marked executed and the value is moved before the
// external call runs, so a callee that re-enters the engine observes
// the proposal as already executed and cannot reach the transfer again.
// The whole execution - flag, transfer and every nested change made
// while the callee runs - happens inside a cache-wrap: on call failure
// it is discarded as one piece and the proposal returns to the
// executable state, ready for a retry.
func (s *Service) Execute(ctx covault.Context, id int64) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		// An execution is already running. This is either a re-entrant
		// call made by the external action or a concurrent attempt;
		// neither may run, but the caller still gets the most specific
		// refusal the usual precondition order would produce.
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, _, err := s.ownerCaller(ctx); err != nil {
			return err
		}
		prop, err := s.proposals.GetProposal(s.db, id)
		if err != nil {
			return err
		}
		if prop.Executed {
			return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
		}
		return errors.Wrapf(ErrExecutionInFlight, "proposal %d", id)
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()

	caller, conf, err := s.ownerCaller(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	prop, err := s.proposals.GetProposal(s.db, id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if prop.Executed {
		s.mu.Unlock()
		return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	if prop.ConfirmationCount() < conf.Threshold {
		have, need := prop.ConfirmationCount(), conf.Threshold
		s.mu.Unlock()
		return errors.Wrapf(ErrInsufficientConfirmations,
			"proposal %d has %d of %d", id, have, need)
	}
	if err := prop.Destination.Validate(); err != nil {
		s.mu.Unlock()
		return errors.Wrap(ErrInvalidDestination, err.Error())
	}

	// From here on all state changes go into a cache-wrap. The live db
	// is swapped for it, so anything the callee does re-entrantly lands
	// in the same scratch-pad and shares the fate of the execution.
	base := s.db
	cache := base.CacheWrap()
	s.db = cache

	rollback := func() {
		s.db = base
		cache.Discard()
	}
	fail := func(cause error) error {
		rollback()
		s.emitter.Emit(executionFailedEvent(id, cause))
		s.mu.Unlock()
		return errors.Wrapf(ErrExecutionFailed, "proposal %d: %s", id, cause)
	}

	// Check-effects-interaction: the terminal flag and its record come
	// before the external call.
	prop.Executed = true
	if err := s.proposals.Update(cache, id, prop); err != nil {
		rollback()
		s.mu.Unlock()
		return err
	}
	s.emitter.Emit(executedEvent(id, caller))

	// The transfer and the call form one atomic effect.
	if prop.Amount.IsPositive() {
		if err := s.cash.Move(cache, VaultAddress(), prop.Destination, prop.Amount); err != nil {
			return fail(err)
		}
	}

	call := Call{
		Destination: prop.Destination,
		Amount:      prop.Amount,
		Payload:     prop.Payload,
		Budget:      s.budget,
	}

	// The callee may re-enter, so the mutex cannot be held across the
	// call. Exclusivity is kept by the inFlight guard above.
	s.mu.Unlock()
	callErr := s.invoker.Invoke(ctx, call)
	s.mu.Lock()

	if callErr != nil {
		return fail(callErr)
	}
	s.db = base
	if err := cache.Write(); err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "cannot persist execution")
	}
	s.mu.Unlock()
	return nil
}
