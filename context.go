package covault

import (
	"context"
	"encoding/json"
)

// Context is just the standard context, with enrichment conventions.
//
// Extensions that attach data use private keys together with a pair of
// functions:
//
//	WithXYZ(Context, T) Context
//	GetXYZ(Context) (val T, ok bool)
//
// The most important use is caller attestation: the host injects the
// identity of the authenticated caller into the context (see x/attest)
// and handlers never trust identity passed as an argument.
type Context = context.Context

// Options are the genesis options. Each extension can look up its key
// and parse the raw json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop and
// no error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
