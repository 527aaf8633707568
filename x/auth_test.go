package x

import (
	"context"
	"testing"

	"github.com/covault/covault"
	"github.com/covault/covault/covaulttest"
	"github.com/covault/covault/covaulttest/assert"
)

func TestChainAuth(t *testing.T) {
	a := covaulttest.NewCondition()
	b := covaulttest.NewCondition()
	c := covaulttest.NewCondition()

	fixed := &covaulttest.Auth{Signer: a}
	ctxBacked := &covaulttest.CtxAuth{Key: "auth"}
	chain := ChainAuth(fixed, ctxBacked)

	bg := context.Background()
	ctx := ctxBacked.SetConditions(bg, b)

	cases := map[string]struct {
		ctx        covault.Context
		wantConds  []covault.Condition
		wantSigner covault.Condition
	}{
		"fixed signer only": {
			ctx:        bg,
			wantConds:  []covault.Condition{a},
			wantSigner: a,
		},
		"both sources": {
			ctx:        ctx,
			wantConds:  []covault.Condition{a, b},
			wantSigner: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantConds, chain.GetConditions(tc.ctx))
			assert.Equal(t, tc.wantSigner, MainSigner(tc.ctx, chain))
			for _, cond := range tc.wantConds {
				assert.Equal(t, true, chain.HasAddress(tc.ctx, cond.Address()))
			}
			assert.Equal(t, false, chain.HasAddress(tc.ctx, c.Address()))
		})
	}
}

func TestChainAuthEmpty(t *testing.T) {
	chain := ChainAuth(&covaulttest.Auth{}, &covaulttest.CtxAuth{Key: "auth"})
	bg := context.Background()

	assert.Equal(t, 0, len(chain.GetConditions(bg)))
	assert.Nil(t, MainSigner(bg, chain))
	assert.Equal(t, false, chain.HasAddress(bg, covaulttest.NewAddress()))
}

func TestGetAddresses(t *testing.T) {
	a := covaulttest.NewCondition()
	b := covaulttest.NewCondition()
	auth := &covaulttest.Auth{Signers: []covault.Condition{a, b}}

	addrs := GetAddresses(context.Background(), auth)
	assert.Equal(t, []covault.Address{a.Address(), b.Address()}, addrs)
}

func TestHasAllAddresses(t *testing.T) {
	a := covaulttest.NewCondition()
	b := covaulttest.NewCondition()
	auth := &covaulttest.Auth{Signers: []covault.Condition{a, b}}
	bg := context.Background()

	assert.Equal(t, true, HasAllAddresses(bg, auth, nil))
	assert.Equal(t, true, HasAllAddresses(bg, auth, []covault.Address{a.Address()}))
	assert.Equal(t, true, HasAllAddresses(bg, auth, []covault.Address{a.Address(), b.Address()}))
	assert.Equal(t, false, HasAllAddresses(bg, auth,
		[]covault.Address{a.Address(), covaulttest.NewAddress()}))
}
