package crypto

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Engine is the symmetric cipher bound to an owning account. It is not
// cryptographically strong — a key-cycling XOR stream keyed by an
// operator-controlled secret — and is deliberately kept that way: the
// framing and ownership binding are the contract, not the cipher strength.
//
// Encrypt derives the effective key from the caller's stored encryption key
// (or, when none is set, from the caller's own 20-byte address), applies the
// XOR stream and prepends the caller address so the ciphertext is bound to
// its creator.
//
// Decrypt re-derives the key the same way from the *current* caller state.
// It refuses ciphertexts shorter than the owner prefix ([ErrInvalidFormat])
// and ciphertexts whose prefix is not the caller ([ErrPermissionDenied]),
// and reports non-UTF-8 output as [ErrDecryptionFailed]. Note that a key
// changed after encryption silently yields wrong plaintext unless the UTF-8
// check happens to trip; that latent property is preserved, not fixed.
type Engine interface {
	Encrypt(ctx context.Context, caller common.Address, plaintext string) ([]byte, error)
	Decrypt(ctx context.Context, caller common.Address, ciphertext []byte) (string, error)
}

// KeyReader is the slice of the storage layer the engine needs: the stored
// encryption key of an account. *store.Fields satisfies it.
type KeyReader interface {
	Key(ctx context.Context, account common.Address) ([]byte, error)
}
