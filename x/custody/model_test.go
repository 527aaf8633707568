package custody

import (
	"testing"

	"github.com/covault/covault"
	"github.com/covault/covault/coin"
	"github.com/covault/covault/covaulttest"
	"github.com/covault/covault/covaulttest/assert"
	"github.com/covault/covault/errors"
	"github.com/covault/covault/store"
)

func TestConfigValidate(t *testing.T) {
	alice := covaulttest.NewAddress()
	bob := covaulttest.NewAddress()

	cases := map[string]struct {
		conf    Config
		wantErr *errors.Error
	}{
		"single owner": {
			conf: Config{Owners: []covault.Address{alice}, Threshold: 1},
		},
		"all owners required": {
			conf: Config{Owners: []covault.Address{alice, bob}, Threshold: 2},
		},
		"no owners": {
			conf:    Config{Threshold: 1},
			wantErr: ErrInvalidConfiguration,
		},
		"nil owner": {
			conf:    Config{Owners: []covault.Address{alice, nil}, Threshold: 1},
			wantErr: ErrInvalidConfiguration,
		},
		"malformed owner": {
			conf:    Config{Owners: []covault.Address{[]byte("short")}, Threshold: 1},
			wantErr: ErrInvalidConfiguration,
		},
		"duplicated owner": {
			conf:    Config{Owners: []covault.Address{alice, alice}, Threshold: 1},
			wantErr: ErrInvalidConfiguration,
		},
		"zero threshold": {
			conf:    Config{Owners: []covault.Address{alice, bob}},
			wantErr: ErrInvalidConfiguration,
		},
		"threshold above owner count": {
			conf:    Config{Owners: []covault.Address{alice, bob}, Threshold: 3},
			wantErr: ErrInvalidConfiguration,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestConfigIsOwner(t *testing.T) {
	alice := covaulttest.NewAddress()
	bob := covaulttest.NewAddress()
	conf := Config{Owners: []covault.Address{alice}, Threshold: 1}

	assert.Equal(t, true, conf.IsOwner(alice))
	assert.Equal(t, false, conf.IsOwner(bob))
	assert.Equal(t, false, conf.IsOwner(nil))
}

func TestProposalConfirmations(t *testing.T) {
	alice := covaulttest.NewAddress()
	bob := covaulttest.NewAddress()

	p := Proposal{Destination: covaulttest.NewAddress()}
	assert.Equal(t, uint32(0), p.ConfirmationCount())
	assert.Equal(t, false, p.HasConfirmed(alice))

	p.Confirmations = append(p.Confirmations, alice)
	assert.Equal(t, uint32(1), p.ConfirmationCount())
	assert.Equal(t, true, p.HasConfirmed(alice))
	assert.Equal(t, false, p.HasConfirmed(bob))
}

func TestProposalBucketAssignsDenseIDs(t *testing.T) {
	db := store.MemStore()
	b := NewProposalBucket()

	for want := int64(0); want < 3; want++ {
		p := Proposal{
			Destination: covaulttest.NewAddress(),
			Amount:      coin.NewCoin(1, 0, "IOV"),
		}
		id, err := b.Create(db, &p)
		assert.Nil(t, err)
		assert.Equal(t, want, id)
	}

	count, err := b.Count(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), count)

	// Identifiers are stable, the stored detail reads back.
	p, err := b.GetProposal(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(1, 0, "IOV"), p.Amount)

	_, err = b.GetProposal(db, 3)
	assert.IsErr(t, errors.ErrNotFound, err)
}
