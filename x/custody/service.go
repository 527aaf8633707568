package custody

import (
	"sync"
	"sync/atomic"

	"github.com/covault/covault"
	"github.com/covault/covault/coin"
	"github.com/covault/covault/errors"
	"github.com/covault/covault/x"
	"github.com/covault/covault/x/cash"
)

// vaultCondition controls the vault's own balance in the cash bucket.
var vaultCondition = covault.NewCondition("custody", "vault", []byte("treasury"))

// VaultAddress returns the address under which the vault holds its own
// balance.
func VaultAddress() covault.Address {
	return vaultCondition.Address()
}

// Options configures the optional collaborators of a Service.
type Options struct {
	// Emitter receives one record per state change. Defaults to
	// dropping them.
	Emitter covault.Emitter

	// Invoker performs the external action of executed proposals.
	// Defaults to accepting every call without doing anything, which is
	// enough for vaults that only transfer value.
	Invoker Invoker

	// Budget is the compute ceiling handed to the invoker on every
	// call. Defaults to DefaultBudget.
	Budget uint64
}

// Service is the single owner of the vault state. All mutating entry
// points authenticate the caller through the attested conditions on the
// context, never through arguments.
//
// The service serializes state mutations internally, so it is safe to
// share between goroutines even though the conceptual model is a single
// writer.
type Service struct {
	auth    x.Authenticator
	emitter covault.Emitter
	invoker Invoker
	budget  uint64

	config    ConfigBucket
	proposals ProposalBucket
	cash      cash.Controller

	mu sync.Mutex
	// db is the live state. While an external call is running it points
	// at a cache-wrap, so that every change made during the call -
	// including re-entrant ones - is discarded in one piece if the call
	// fails.
	db covault.CacheableKVStore
	// inFlight is set for the whole duration of an execution, including
	// the external call.
	inFlight atomic.Bool
}

// NewService returns a service operating on the given state. The
// configuration must be written separately, either with Initialize or
// from genesis.
func NewService(db covault.CacheableKVStore, auth x.Authenticator, opts Options) *Service {
	if opts.Emitter == nil {
		opts.Emitter = covault.NopEmitter{}
	}
	if opts.Invoker == nil {
		opts.Invoker = noopInvoker{}
	}
	if opts.Budget == 0 {
		opts.Budget = DefaultBudget
	}
	return &Service{
		auth:      auth,
		emitter:   opts.Emitter,
		invoker:   opts.Invoker,
		budget:    opts.Budget,
		config:    NewConfigBucket(),
		proposals: NewProposalBucket(),
		cash:      cash.NewController(),
		db:        db,
	}
}

// Initialize writes the owner set and the threshold. It can succeed at
// most once per vault; every later call fails with ErrInitialized.
func (s *Service) Initialize(owners []covault.Address, threshold uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf := Config{Owners: owners, Threshold: threshold}
	return initConfig(s.db, &conf, s.emitter)
}

func initConfig(db covault.KVStore, conf *Config, emitter covault.Emitter) error {
	bucket := NewConfigBucket()
	switch ok, err := bucket.Exists(db); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(ErrInitialized, "owner set is immutable")
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if err := bucket.Save(db, conf); err != nil {
		return err
	}
	emitter.Emit(initializedEvent(conf))
	return nil
}

// Receive credits unsolicited value to the vault. It requires no
// authorization and has no side effect beyond the balance increase and
// its record. The from address is informational only.
func (s *Service) Receive(from covault.Address, amount coin.Coin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cash.Deposit(s.db, VaultAddress(), amount); err != nil {
		return err
	}
	s.emitter.Emit(depositedEvent(from, amount))
	return nil
}

// Submit records a new proposal and returns its identifier. The caller
// must be an owner, the destination must be valid and the amount must
// not exceed the vault balance at submission time. The proposer does
// not implicitly confirm; confirmation is always a separate call.
func (s *Service) Submit(ctx covault.Context, destination covault.Address, amount coin.Coin, payload []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, _, err := s.ownerCaller(ctx)
	if err != nil {
		return 0, err
	}
	if err := destination.Validate(); err != nil {
		return 0, errors.Wrap(ErrInvalidDestination, err.Error())
	}
	if amount.IsPositive() {
		held, err := s.cash.Balance(s.db, VaultAddress())
		if err != nil {
			return 0, err
		}
		if !held.IsGTE(amount) {
			return 0, errors.Wrapf(cash.ErrInsufficientFunds,
				"vault holds %s, proposal asks for %s", held, amount)
		}
	} else if !amount.IsZero() {
		return 0, errors.Wrap(errors.ErrAmount, "negative amount")
	}

	prop := Proposal{
		Destination: destination,
		Amount:      amount,
		Payload:     payload,
	}
	id, err := s.proposals.Create(s.db, &prop)
	if err != nil {
		return 0, err
	}
	s.emitter.Emit(proposedEvent(id, caller, &prop))
	return id, nil
}

// Confirm records the caller's approval of the given proposal. Each
// owner can confirm a proposal exactly once; a repeated confirmation is
// rejected, not ignored. Confirming never triggers execution.
func (s *Service) Confirm(ctx covault.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, _, err := s.ownerCaller(ctx)
	if err != nil {
		return err
	}
	prop, err := s.proposals.GetProposal(s.db, id)
	if err != nil {
		return err
	}
	if prop.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	if prop.HasConfirmed(caller) {
		return errors.Wrapf(ErrAlreadyConfirmed, "proposal %d by %s", id, caller)
	}
	prop.Confirmations = append(prop.Confirmations, caller)
	if err := s.proposals.Update(s.db, id, prop); err != nil {
		return err
	}
	s.emitter.Emit(confirmedEvent(id, caller))
	return nil
}

// Cancel terminates the given proposal. Any owner that has confirmed
// the proposal may cancel it, not only the original proposer. The
// executed flag doubles as the terminal marker, so a cancelled proposal
// can never be confirmed or executed afterwards.
func (s *Service) Cancel(ctx covault.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, _, err := s.ownerCaller(ctx)
	if err != nil {
		return err
	}
	prop, err := s.proposals.GetProposal(s.db, id)
	if err != nil {
		return err
	}
	if prop.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	if !prop.HasConfirmed(caller) {
		return errors.Wrapf(ErrCancelUnauthorized, "proposal %d by %s", id, caller)
	}
	prop.Executed = true
	if err := s.proposals.Update(s.db, id, prop); err != nil {
		return err
	}
	s.emitter.Emit(cancelledEvent(id, caller))
	return nil
}

// Amend replaces the confirmation threshold. The new value must fit the
// immutable owner set. Already executed proposals are not affected; a
// pending proposal is gated by whatever the threshold is at execution
// time.
func (s *Service) Amend(ctx covault.Context, threshold uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, conf, err := s.ownerCaller(ctx)
	if err != nil {
		return err
	}
	if err := validateThreshold(threshold, len(conf.Owners)); err != nil {
		return err
	}
	conf.Threshold = threshold
	if err := s.config.Save(s.db, conf); err != nil {
		return err
	}
	s.emitter.Emit(thresholdAmendedEvent(threshold, caller))
	return nil
}

// Owners returns the immutable owner set.
func (s *Service) Owners() ([]covault.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conf, err := s.config.Load(s.db)
	if err != nil {
		return nil, err
	}
	return conf.Owners, nil
}

// Threshold returns the current confirmation threshold.
func (s *Service) Threshold() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conf, err := s.config.Load(s.db)
	if err != nil {
		return 0, err
	}
	return conf.Threshold, nil
}

// ProposalCount returns the number of proposals ever submitted,
// including executed and cancelled ones. Proposal identifiers are the
// range [0, count).
func (s *Service) ProposalCount() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposals.Count(s.db)
}

// Proposal returns the full detail of a single proposal.
func (s *Service) Proposal(id int64) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposals.GetProposal(s.db, id)
}

// Balance returns the value currently held by the vault.
func (s *Service) Balance() (coin.Coin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cash.Balance(s.db, VaultAddress())
}

// ownerCaller resolves the attested caller and requires owner
// membership. Must be called with the mutex held.
func (s *Service) ownerCaller(ctx covault.Context) (covault.Address, *Config, error) {
	conf, err := s.config.Load(s.db)
	if err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, s.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no attested caller")
	}
	addr := signer.Address()
	if !conf.IsOwner(addr) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", addr)
	}
	return addr, conf, nil
}
