package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AddressLength is the size in bytes of an account identifier. Every
// ciphertext produced by the cipher engine is prefixed with exactly this
// many owner bytes.
const AddressLength = common.AddressLength

// Note is the core stored entity: a single encrypted note owned by one
// account.
//
// Ids are dense and contiguous per owner: at any moment the live ids for an
// account are exactly {0, 1, ..., count-1}. Deletion keeps this property by
// moving the then-last note into the freed slot (swap-compaction), so an id
// is stable only until a delete of a lower id occurs.
type Note struct {
	// ID is the per-owner index of the note, in range [0, count).
	ID *uint256.Int

	// Owner is the account that created the note. It never changes except
	// during compaction, when the last note is relabeled to a freed id —
	// and even then the owner is necessarily the same account.
	Owner common.Address

	// EncryptedContent is the cipher engine output: the 20-byte owner
	// identifier followed by the XOR-stream ciphertext body. Any stored
	// value shorter than 20 bytes is structurally invalid.
	EncryptedContent []byte

	// Timestamp is the block time recorded at the last create or update.
	Timestamp *uint256.Int

	// Title is stored and transmitted in plaintext; only the content body
	// is encrypted.
	Title string
}

// NoteList is the parallel-array listing of every live note of one account,
// in ascending id order. The three slices always have equal length.
type NoteList struct {
	IDs        []*uint256.Int
	Titles     []string
	Timestamps []*uint256.Int
}

// Len returns the number of listed notes.
func (l NoteList) Len() int {
	return len(l.IDs)
}
