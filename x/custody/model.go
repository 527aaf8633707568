package custody

import (
	"encoding/binary"

	"github.com/covault/covault"
	"github.com/covault/covault/coin"
	"github.com/covault/covault/errors"
	"github.com/covault/covault/orm"
)

const (
	// BucketName is where we store the proposals
	BucketName = "proposals"
	// SequenceName is an auto-increment ID counter for proposals
	SequenceName = "id"
	// ConfigBucketName is where we store the vault configuration
	ConfigBucketName = "custody"

	// To avoid burning CPU, this is the maximum number of owners allowed
	// to control a single vault.
	maxOwnersAllowed = 100
)

// configKey is the fixed key the one and only Config lives under.
var configKey = []byte("config")

// Config is the owner set and the activation threshold of the vault.
// The owner set is immutable once written; only the threshold can later
// be amended.
type Config struct {
	Owners    []covault.Address `json:"owners"`
	Threshold uint32            `json:"threshold"`
}

var _ orm.Model = (*Config)(nil)

// Validate enforces owners and threshold boundaries.
func (c *Config) Validate() error {
	switch n := len(c.Owners); {
	case n == 0:
		return errors.Wrap(ErrInvalidConfiguration, "no owners")
	case n > maxOwnersAllowed:
		return errors.Wrap(ErrInvalidConfiguration, "too many owners")
	}
	index := make(map[string]struct{}, len(c.Owners))
	for _, o := range c.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidConfiguration, "owner %s", o)
		}
		if _, ok := index[string(o)]; ok {
			return errors.Wrapf(ErrInvalidConfiguration, "duplicated owner %s", o)
		}
		index[string(o)] = struct{}{}
	}
	if err := validateThreshold(c.Threshold, len(c.Owners)); err != nil {
		return errors.Wrap(ErrInvalidConfiguration, err.Error())
	}
	return nil
}

// IsOwner returns true iff the given address belongs to the owner set.
func (c *Config) IsOwner(a covault.Address) bool {
	for _, o := range c.Owners {
		if o.Equals(a) {
			return true
		}
	}
	return false
}

// validateThreshold returns an error if the threshold cannot gate a
// vault with the given number of owners.
func validateThreshold(threshold uint32, owners int) error {
	if threshold < 1 {
		return errors.Wrap(ErrInvalidThreshold, "threshold must be greater than 0")
	}
	if int(threshold) > owners {
		return errors.Wrapf(ErrInvalidThreshold,
			"threshold is %d and must not be greater than %d owners", threshold, owners)
	}
	return nil
}

// Proposal is a pending or resolved request to transfer value from the
// vault and invoke an external action.
type Proposal struct {
	Destination covault.Address `json:"destination"`
	Amount      coin.Coin       `json:"amount"`
	Payload     []byte          `json:"payload,omitempty"`

	// Confirmations is the set of owners that approved this proposal so
	// far. It is the single source of truth: the confirmation count is
	// its cardinality, membership is checked against it, and an owner
	// can appear at most once.
	Confirmations []covault.Address `json:"confirmations"`

	// Executed marks the terminal state. A cancelled proposal reuses
	// this flag as its terminal marker; the event stream is what tells
	// executed and cancelled proposals apart.
	Executed bool `json:"executed"`
}

var _ orm.Model = (*Proposal)(nil)

// Validate requires a well formed destination and a non negative amount.
func (p *Proposal) Validate() error {
	if err := p.Destination.Validate(); err != nil {
		return errors.Wrap(ErrInvalidDestination, err.Error())
	}
	// A zero amount needs no currency, the action is all that matters.
	if !p.Amount.IsZero() || p.Amount.Ticker != "" {
		if err := p.Amount.Validate(); err != nil {
			return errors.Wrap(err, "amount")
		}
		if !p.Amount.IsNonNegative() {
			return errors.Wrap(errors.ErrAmount, "negative amount")
		}
	}
	for _, c := range p.Confirmations {
		if err := c.Validate(); err != nil {
			return errors.Wrap(err, "confirmation")
		}
	}
	return nil
}

// HasConfirmed returns true iff the given owner already confirmed this
// proposal.
func (p *Proposal) HasConfirmed(a covault.Address) bool {
	for _, c := range p.Confirmations {
		if c.Equals(a) {
			return true
		}
	}
	return false
}

// ConfirmationCount is the number of distinct owners that confirmed.
func (p *Proposal) ConfirmationCount() uint32 {
	return uint32(len(p.Confirmations))
}

// ConfigBucket is a type-safe wrapper around the configuration store.
type ConfigBucket struct {
	orm.Bucket
}

// NewConfigBucket initializes a ConfigBucket with default name.
func NewConfigBucket() ConfigBucket {
	return ConfigBucket{Bucket: orm.NewBucket(ConfigBucketName)}
}

// Load returns the vault configuration, or ErrNotInitialized when none
// was ever saved.
func (b ConfigBucket) Load(db covault.ReadOnlyKVStore) (*Config, error) {
	var c Config
	switch err := b.One(db, configKey, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrNotInitialized, "no configuration")
	default:
		return nil, errors.Wrap(err, "bucket lookup")
	}
}

// Exists returns true if a configuration was already saved.
func (b ConfigBucket) Exists(db covault.ReadOnlyKVStore) (bool, error) {
	return b.Has(db, configKey)
}

// Save persists the vault configuration.
func (b ConfigBucket) Save(db covault.KVStore, c *Config) error {
	return b.Put(db, configKey, c)
}

// ProposalBucket is a type-safe wrapper around the proposal store with
// an auto-increment ID counter.
type ProposalBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewProposalBucket initializes a ProposalBucket with default name.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{
		Bucket: orm.NewBucket(BucketName),
		idSeq:  orm.NewSequence(BucketName, SequenceName),
	}
}

// Create appends a new proposal and returns its identifier. Identifiers
// are dense, zero based and never reused.
func (b ProposalBucket) Create(db covault.KVStore, p *Proposal) (int64, error) {
	seq, err := b.idSeq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire id")
	}
	// The sequence counts from 1, proposal ids from 0.
	id := seq - 1
	if err := b.Put(db, proposalKey(id), p); err != nil {
		return 0, err
	}
	return id, nil
}

// GetProposal returns the proposal with the given ID.
func (b ProposalBucket) GetProposal(db covault.ReadOnlyKVStore, id int64) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, proposalKey(id), &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %d", id)
	}
	return &p, nil
}

// Update overwrites an existing proposal.
func (b ProposalBucket) Update(db covault.KVStore, id int64, p *Proposal) error {
	return b.Put(db, proposalKey(id), p)
}

// Count returns the number of proposals ever created.
func (b ProposalBucket) Count(db covault.ReadOnlyKVStore) (int64, error) {
	return b.idSeq.Latest(db)
}

func proposalKey(id int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(id))
	return bz
}
