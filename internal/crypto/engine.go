// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"

	"github.com/notekeep/go-secure-notes/internal/logger"
)

// engine is the private implementation of [Engine]. It holds no state of
// its own: the effective key is re-derived from the key store on every
// operation, which is exactly what makes decryption caller-bound.
type engine struct {
	keys   KeyReader
	logger *logger.Logger
}

// NewEngine constructs an [Engine] reading per-account keys from keys.
func NewEngine(keys KeyReader, logger *logger.Logger) Engine {
	return &engine{keys: keys, logger: logger}
}

// effectiveKey returns the caller's stored encryption key, or the caller's
// own address bytes when no key (or an empty one) is stored. The result is
// never empty, so the XOR stream always has a key byte to cycle.
func (e *engine) effectiveKey(ctx context.Context, caller common.Address) ([]byte, error) {
	stored, err := e.keys.Key(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("reading encryption key: %w", err)
	}

	if len(stored) == 0 {
		return caller.Bytes(), nil
	}
	return stored, nil
}

// Encrypt implements [Engine]. The returned blob is
// caller (20 bytes) ++ XOR_stream(plaintext, effectiveKey) and is therefore
// always at least 20 bytes. The only error source is the key store.
func (e *engine) Encrypt(ctx context.Context, caller common.Address, plaintext string) ([]byte, error) {
	key, err := e.effectiveKey(ctx, caller)
	if err != nil {
		return nil, err
	}

	return frame(caller, xorStream(key, []byte(plaintext))), nil
}

// Decrypt implements [Engine]. Structure and ownership are checked before
// any key material is touched; the key is then derived from the caller's
// current state, symmetric to Encrypt.
func (e *engine) Decrypt(ctx context.Context, caller common.Address, ciphertext []byte) (string, error) {
	body, err := unframe(caller, ciphertext)
	if err != nil {
		return "", err
	}

	key, err := e.effectiveKey(ctx, caller)
	if err != nil {
		return "", err
	}

	plaintext := xorStream(key, body)
	if !utf8.Valid(plaintext) {
		logger.FromContext(ctx).Debug().
			Str("func", "engine.Decrypt").
			Str("caller", caller.Hex()).
			Msg("decrypted bytes are not valid utf-8")
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
