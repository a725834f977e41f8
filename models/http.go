package models

// Request and response bodies for the HTTP gateway. Byte-sequence fields
// ([]byte) travel as base64 strings, the default encoding/json behavior.
// Numeric 256-bit fields travel as 0x-prefixed hex strings via
// uint256.Int's text marshaling.

// TokenRequest asks the gateway to issue a bearer token for the given
// account address ("0x..." hex form).
type TokenRequest struct {
	Address string `json:"address"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterRequest sets the caller's encryption key. An empty key still
// registers the caller but leaves the default (address-derived) key in use.
type RegisterRequest struct {
	Key []byte `json:"key"`
}

// KeyRequest unconditionally replaces the caller's encryption key.
type KeyRequest struct {
	Key []byte `json:"key"`
}

// NoteRequest carries the plaintext note fields for create and update.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteIDResponse is returned by note creation.
type NoteIDResponse struct {
	ID string `json:"id"`
}

// NoteResponse is the read form of a note. When the note does not exist the
// gateway returns the sentinel tuple ("", "Note does not exist", "0x0")
// with HTTP 200, matching the engine's value-shaped error design.
type NoteResponse struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// NoteCountResponse carries the caller's live note count.
type NoteCountResponse struct {
	Count string `json:"count"`
}

// NoteListResponse is the parallel-array listing of the caller's notes in
// ascending id order. All three slices have equal length.
type NoteListResponse struct {
	IDs        []string `json:"ids"`
	Titles     []string `json:"titles"`
	Timestamps []string `json:"timestamps"`
}

// EncryptRequest asks the raw cipher engine to encrypt content for the
// caller.
type EncryptRequest struct {
	Content string `json:"content"`
}

// EncryptResponse carries the framed ciphertext (owner prefix + body).
type EncryptResponse struct {
	Data []byte `json:"data"`
}

// DecryptRequest asks the raw cipher engine to decrypt a ciphertext blob.
type DecryptRequest struct {
	Data []byte `json:"data"`
}

// DecryptResponse carries the decrypted plaintext, or one of the error
// sentinel strings when decryption is refused; the call itself never fails.
type DecryptResponse struct {
	Content string `json:"content"`
}

// AddressResponse carries this unit's own contract address (legacy
// compatibility endpoint).
type AddressResponse struct {
	Address string `json:"address"`
}
