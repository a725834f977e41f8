// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/notekeep/go-secure-notes/models"
)

// xorStream XORs byte i of src with key[i mod len(key)]. The transform is
// its own inverse. key must be non-empty; callers guarantee this because the
// effective key falls back to the 20-byte caller address.
func xorStream(key, src []byte) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

// frame prepends the owner address to the ciphertext body:
// blob = owner (20 bytes) ++ body. The prefix is what binds a ciphertext to
// its creator and is checked on every decrypt.
func frame(owner common.Address, body []byte) []byte {
	out := make([]byte, 0, models.AddressLength+len(body))
	out = append(out, owner.Bytes()...)
	out = append(out, body...)
	return out
}

// unframe splits a blob into its owner prefix and ciphertext body, checking
// structure and ownership. Returns [ErrInvalidFormat] when the blob is too
// short to carry a prefix, and [ErrPermissionDenied] when the prefix is not
// the caller.
func unframe(caller common.Address, blob []byte) ([]byte, error) {
	if len(blob) < models.AddressLength {
		return nil, ErrInvalidFormat
	}

	if common.BytesToAddress(blob[:models.AddressLength]) != caller {
		return nil, ErrPermissionDenied
	}

	return blob[models.AddressLength:], nil
}
