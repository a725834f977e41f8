package store

import (
	"context"
)

// Field identifies one of the logical tables of the compound-key layout.
// Together with an opaque key it forms the full storage address of a value.
type Field uint8

const (
	// FieldNoteOwner maps (account ++ note id) to the 20-byte owner address.
	FieldNoteOwner Field = iota + 1

	// FieldNoteContent maps (account ++ note id) to the framed ciphertext.
	FieldNoteContent

	// FieldNoteTimestamp maps (account ++ note id) to a 32-byte big-endian
	// block timestamp.
	FieldNoteTimestamp

	// FieldNoteTitle maps (account ++ note id) to the plaintext UTF-8 title.
	FieldNoteTitle

	// FieldNoteCount maps an account to its 32-byte big-endian live note
	// count.
	FieldNoteCount

	// FieldUserKey maps an account to its encryption key bytes. The stored
	// value may legitimately be empty: auto-registration writes an explicit
	// empty marker.
	FieldUserKey
)

// String returns the table name of the field, used in logs.
func (f Field) String() string {
	switch f {
	case FieldNoteOwner:
		return "note_owner"
	case FieldNoteContent:
		return "note_content"
	case FieldNoteTimestamp:
		return "note_timestamp"
	case FieldNoteTitle:
		return "note_title"
	case FieldNoteCount:
		return "note_count"
	case FieldUserKey:
		return "user_key"
	default:
		return "unknown"
	}
}

// KeyValue is the persistence primitive underneath the typed field
// accessors. It performs no validation whatsoever; every invariant is
// enforced above, in the note service.
//
// Get returns (nil, nil) for an absent key: absence is represented by each
// field's zero value, not by an error. Has reports physical presence and is
// the only way to distinguish an explicitly stored empty value from a key
// that was never written — the property auto-registration relies on to emit
// its event exactly once.
//
// Every Set is a durable write visible to subsequent reads within the same
// and later invocations.
type KeyValue interface {
	Get(ctx context.Context, field Field, key []byte) ([]byte, error)
	Set(ctx context.Context, field Field, key []byte, value []byte) error
	Has(ctx context.Context, field Field, key []byte) (bool, error)
}
