package crypto

import "errors"

// Sentinel errors returned by [Engine.Decrypt]. They describe refusals, not
// faults: the public surface maps each of them to a descriptive string value
// rather than failing the call. Match with [errors.Is].
var (
	// ErrInvalidFormat is returned when the ciphertext is shorter than the
	// 20-byte owner prefix and therefore cannot be a valid framed blob.
	ErrInvalidFormat = errors.New("invalid data format")

	// ErrPermissionDenied is returned when the owner prefix of the
	// ciphertext is not the caller: only the original encrypting account
	// may decrypt.
	ErrPermissionDenied = errors.New("caller is not the owner of the encrypted data")

	// ErrDecryptionFailed is returned when the decrypted bytes are not
	// valid UTF-8 text, which is the only self-check this cipher has.
	ErrDecryptionFailed = errors.New("decrypted content is not valid text")
)
