// Package host models the execution-environment context that accompanies
// every external invocation: who is calling, what the current block time is,
// and what this unit's own address is.
//
// The engine never reads the acting identity from user-supplied data; it is
// sourced exactly once per invocation at the external boundary (the gateway)
// and passed down explicitly as a CallContext.
package host

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CallContext carries the host-supplied facts of a single invocation.
// It is immutable for the duration of the call.
type CallContext struct {
	// Caller is the account on whose behalf the invocation runs. All note
	// addressing is implicitly scoped to this account.
	Caller common.Address

	// BlockTime is the host's current block timestamp in seconds.
	BlockTime uint64

	// Self is the address of this execution unit itself. Returned by the
	// legacy getEncryptionContractAddress operation.
	Self common.Address
}

// Timestamp returns the block time as a 256-bit integer, the form in which
// it is persisted on notes.
func (c CallContext) Timestamp() *uint256.Int {
	return uint256.NewInt(c.BlockTime)
}
