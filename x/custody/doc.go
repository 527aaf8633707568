/*
Package custody implements the shared-custody engine: a fixed owner
set, an amendable confirmation threshold, an append-only proposal store
and the threshold-gated execution of proposals.

Any owner may submit a proposal to transfer value from the vault and
invoke an external action. Owners confirm proposals independently; once
a proposal collects at least threshold confirmations any owner may
execute it. Execution marks the proposal executed before performing the
external call, so a malicious callee re-entering the engine observes
the proposal as already executed. A failed call rolls the proposal back
to the executable state.
*/
package custody
