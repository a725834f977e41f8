package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Fields is the typed accessor layer over a [KeyValue] backend: one getter
// and setter per logical field, with all key and value encoding in one
// place.
//
// Note fields are keyed by the owning account followed by the 32-byte
// big-endian note id, giving each account its own dense arena of slots.
// Account fields (count, key) are keyed by the 20-byte address alone.
//
// This layer performs no validation and no ownership checks; it only
// translates between Go types and stored bytes. Absence always decodes to
// the field's zero value.
type Fields struct {
	kv KeyValue
}

// NewFields constructs the typed accessor layer over kv.
func NewFields(kv KeyValue) *Fields {
	return &Fields{kv: kv}
}

// noteKey builds the compound key of a per-note field slot.
func noteKey(owner common.Address, id *uint256.Int) []byte {
	idBytes := id.Bytes32()

	key := make([]byte, 0, common.AddressLength+len(idBytes))
	key = append(key, owner.Bytes()...)
	key = append(key, idBytes[:]...)
	return key
}

// Owner returns the stored owner of the note slot, or the zero address if
// the slot was never written.
func (f *Fields) Owner(ctx context.Context, owner common.Address, id *uint256.Int) (common.Address, error) {
	value, err := f.kv.Get(ctx, FieldNoteOwner, noteKey(owner, id))
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(value), nil
}

// SetOwner stores the owner of the note slot.
func (f *Fields) SetOwner(ctx context.Context, owner common.Address, id *uint256.Int, addr common.Address) error {
	return f.kv.Set(ctx, FieldNoteOwner, noteKey(owner, id), addr.Bytes())
}

// Content returns the framed ciphertext stored at the note slot, or nil.
func (f *Fields) Content(ctx context.Context, owner common.Address, id *uint256.Int) ([]byte, error) {
	return f.kv.Get(ctx, FieldNoteContent, noteKey(owner, id))
}

// SetContent stores the framed ciphertext of the note slot.
func (f *Fields) SetContent(ctx context.Context, owner common.Address, id *uint256.Int, content []byte) error {
	return f.kv.Set(ctx, FieldNoteContent, noteKey(owner, id), content)
}

// Timestamp returns the stored block time of the note slot, zero if absent.
func (f *Fields) Timestamp(ctx context.Context, owner common.Address, id *uint256.Int) (*uint256.Int, error) {
	value, err := f.kv.Get(ctx, FieldNoteTimestamp, noteKey(owner, id))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(value), nil
}

// SetTimestamp stores the block time of the note slot.
func (f *Fields) SetTimestamp(ctx context.Context, owner common.Address, id *uint256.Int, ts *uint256.Int) error {
	tsBytes := ts.Bytes32()
	return f.kv.Set(ctx, FieldNoteTimestamp, noteKey(owner, id), tsBytes[:])
}

// Title returns the plaintext title of the note slot, "" if absent.
func (f *Fields) Title(ctx context.Context, owner common.Address, id *uint256.Int) (string, error) {
	value, err := f.kv.Get(ctx, FieldNoteTitle, noteKey(owner, id))
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// SetTitle stores the plaintext title of the note slot.
func (f *Fields) SetTitle(ctx context.Context, owner common.Address, id *uint256.Int, title string) error {
	return f.kv.Set(ctx, FieldNoteTitle, noteKey(owner, id), []byte(title))
}

// Count returns the live note count of the account, zero if absent. The
// count is also the next id assigned on create.
func (f *Fields) Count(ctx context.Context, account common.Address) (*uint256.Int, error) {
	value, err := f.kv.Get(ctx, FieldNoteCount, account.Bytes())
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(value), nil
}

// SetCount stores the live note count of the account.
func (f *Fields) SetCount(ctx context.Context, account common.Address, count *uint256.Int) error {
	countBytes := count.Bytes32()
	return f.kv.Set(ctx, FieldNoteCount, account.Bytes(), countBytes[:])
}

// Key returns the account's stored encryption key bytes. An account that
// never registered and one that registered with an empty key both read back
// as empty; use [Fields.HasKey] to tell them apart.
func (f *Fields) Key(ctx context.Context, account common.Address) ([]byte, error) {
	return f.kv.Get(ctx, FieldUserKey, account.Bytes())
}

// SetKey stores the account's encryption key bytes. An empty value is a
// legitimate write: it is the explicit marker left by auto-registration.
func (f *Fields) SetKey(ctx context.Context, account common.Address, key []byte) error {
	return f.kv.Set(ctx, FieldUserKey, account.Bytes(), key)
}

// HasKey reports whether the account has ever had a key record written,
// including the empty auto-registration marker.
func (f *Fields) HasKey(ctx context.Context, account common.Address) (bool, error) {
	return f.kv.Has(ctx, FieldUserKey, account.Bytes())
}
