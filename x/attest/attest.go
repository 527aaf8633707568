/*
Package attest carries host-attested caller identity through the
context.

The host environment is trusted to know who is calling. Before handing
control to any state-mutating operation it attaches the caller's
conditions to the context with WithCaller. Services read them back
through the Authenticate implementation of x.Authenticator and never
trust identity supplied in an argument list.
*/
package attest

import (
	"context"

	"github.com/covault/covault"
	"github.com/covault/covault/x"
)

type contextKey int // local to the attest module

const (
	contextKeyCaller contextKey = iota
)

// WithCaller returns a context carrying the attested conditions of the
// caller. Only the host may call this; anything already attached is
// replaced, so a nested call cannot smuggle extra permissions.
func WithCaller(ctx covault.Context, conds ...covault.Condition) covault.Context {
	return context.WithValue(ctx, contextKeyCaller, conds)
}

// Caller returns a condition describing a host-authenticated principal
// with the given identity.
func Caller(id []byte) covault.Condition {
	return covault.NewCondition("attest", "caller", id)
}

// Authenticate reveals the conditions previously attested on a context.
type Authenticate struct {
}

var _ x.Authenticator = Authenticate{}

// GetConditions returns conditions previously set on this context
func (a Authenticate) GetConditions(ctx covault.Context) []covault.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyCaller).([]covault.Condition)
	return val
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx covault.Context, addr covault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
