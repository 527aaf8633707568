/*
Package covault defines the common interfaces that weave together the
packages of the shared-custody engine.

A covault instance is a vault holding native value that is jointly
controlled by a fixed set of owners. Any owner may propose an outbound
action, other owners confirm it independently, and once the number of
confirmations reaches the configured threshold any owner may trigger
its execution.

This root package holds only glue: addresses and the conditions they
are derived from, the key-value store interfaces, genesis options, and
the event records that make state changes observable. The actual logic
lives in the subpackages:

  errors     - coded errors with cause chains and stack traces
  store      - btree-backed cache-wrapping key-value store
  orm        - buckets and sequences on top of a KVStore
  coin       - the native value type
  x          - authentication interfaces shared by extensions
  x/attest   - host-attested caller identity
  x/cash     - the vault ledger (balances and atomic transfers)
  x/custody  - owners, threshold, proposals and the execution engine
*/
package covault
